package models

// FAQ entry shown on the help screen
type FAQ struct {
	BaseModel
	Question string `gorm:"type:varchar(255);not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
}

// Feedback submitted from the help screen
type Feedback struct {
	BaseModel
	UserID    uint   `gorm:"index" json:"user_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Message   string `gorm:"type:text" json:"message"`
	WantReply bool   `json:"want_reply"`
}

// TableName keeps the singular table name used by the mobile backend
func (Feedback) TableName() string {
	return "feedback"
}
