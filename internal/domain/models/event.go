package models

// Event is a community happening announced by an admin or the head
type Event struct {
	BaseModel
	CommunityID uint    `gorm:"index;not null" json:"community_id"`
	CreatedBy   uint    `gorm:"not null" json:"created_by"`
	Name        string  `gorm:"type:varchar(150);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	EventDate   string  `gorm:"type:varchar(20);not null" json:"event_date"` // YYYY-MM-DD
	EventTime   string  `gorm:"type:varchar(20);not null" json:"event_time"` // HH:MM
	Location    string  `gorm:"type:varchar(150)" json:"location"`
	ImageURL    *string `gorm:"type:varchar(255)" json:"image_url"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
