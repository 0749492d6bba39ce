package models

// Notification is a user-facing message stored for later reading
type Notification struct {
	BaseModel
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Title   string `gorm:"type:varchar(150);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `gorm:"type:varchar(20);not null;default:info" json:"type"`
	Seen    bool   `gorm:"not null;default:false" json:"seen"`
}
