package models

// PrivacySetting controls which profile fields other members may see.
// Build new rows with NewPrivacySetting so every flag starts visible.
type PrivacySetting struct {
	BaseModel
	UserID          uint `gorm:"uniqueIndex;not null" json:"user_id"`
	ShowPhone       bool `json:"show_phone"`
	ShowEmail       bool `json:"show_email"`
	ShowDOB         bool `gorm:"column:show_dob" json:"show_dob"`
	ShowAddress     bool `json:"show_address"`
	ShowGender      bool `json:"show_gender"`
	ShowSocialLinks bool `json:"show_social_links"`
}

// NewPrivacySetting returns the default, fully visible settings of userID
func NewPrivacySetting(userID uint) *PrivacySetting {
	return &PrivacySetting{
		UserID:          userID,
		ShowPhone:       true,
		ShowEmail:       true,
		ShowDOB:         true,
		ShowAddress:     true,
		ShowGender:      true,
		ShowSocialLinks: true,
	}
}
