package models

// User is a registered account of the app
type User struct {
	BaseModel
	Name           string `gorm:"type:varchar(100);not null" json:"name"`
	Email          string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Phone          string `gorm:"type:varchar(20)" json:"phone"`
	PasswordHash   string `gorm:"type:varchar(100);not null" json:"-"`
	IsVerified     bool   `json:"is_verified"`
	Gender         string `gorm:"type:varchar(20)" json:"gender"`
	DOB            string `gorm:"column:dob;type:varchar(20)" json:"dob"`
	Location       string `gorm:"type:varchar(150)" json:"location"`
	ProfilePicture string `gorm:"type:varchar(255)" json:"profile_picture"`
	SocialLinks    string `gorm:"type:text" json:"-"` // JSON object, exposed decoded by the API
	FamilyID       *uint  `gorm:"index" json:"family_id"`
}
