package models

// Family groups persons under one household head. HeadName and ContactNumber
// are back-filled from the first person added.
type Family struct {
	BaseModel
	FamilyName    string  `gorm:"type:varchar(100);not null" json:"family_name"`
	Address       string  `gorm:"type:varchar(255)" json:"address"`
	ContactNumber *string `gorm:"type:varchar(20)" json:"contact_number"`
	HeadName      *string `gorm:"type:varchar(100)" json:"head_name"`
	UserID        uint    `gorm:"index" json:"user_id"` // registering user

	Members []Person `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}
