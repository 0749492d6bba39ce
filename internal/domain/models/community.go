package models

// Community is a neighborhood group joined through its invite code
type Community struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Location    string `gorm:"type:varchar(150)" json:"location"`
	Description string `gorm:"type:text" json:"description"`
	InviteCode  string `gorm:"type:varchar(12);uniqueIndex;not null" json:"invite_code"`
	CreatedBy   uint   `json:"created_by"`
}

// CommunityUser is a membership row. A user belongs to at most one community.
type CommunityUser struct {
	BaseModel
	UserID      uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	CommunityID uint   `gorm:"index;not null" json:"community_id"`
	Role        string `gorm:"type:varchar(20);not null;default:member" json:"role"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Community *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
}
