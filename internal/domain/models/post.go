package models

// MediaType of an uploaded post attachment
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Post is a message shared with the author's community
type Post struct {
	BaseModel
	CommunityID uint       `gorm:"index;not null" json:"community_id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Content     *string    `gorm:"type:text" json:"content"`
	MediaURL    *string    `gorm:"type:varchar(255)" json:"media_url"`
	MediaType   *MediaType `gorm:"type:varchar(10)" json:"media_type"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Comment on a post
type Comment struct {
	BaseModel
	PostID  uint   `gorm:"index;not null" json:"post_id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Like is unique per (post, user)
type Like struct {
	BaseModel
	PostID uint `gorm:"uniqueIndex:idx_like_post_user;not null" json:"post_id"`
	UserID uint `gorm:"uniqueIndex:idx_like_post_user;not null" json:"user_id"`
}
