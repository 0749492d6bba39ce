package models

// Person is one member of a family tree. Relation is always expressed
// relative to the family head.
type Person struct {
	BaseModel
	FamilyID      uint    `gorm:"index;not null" json:"family_id"`
	Name          string  `gorm:"type:varchar(100);not null" json:"name"`
	Relation      string  `gorm:"type:varchar(50)" json:"relation"`
	Gender        string  `gorm:"type:varchar(20)" json:"gender"`
	DOB           string  `gorm:"column:dob;type:varchar(20)" json:"dob"`
	Age           int     `json:"age"`
	Phone         string  `gorm:"type:varchar(20)" json:"phone"`
	Address       string  `gorm:"type:varchar(255)" json:"address"`
	Email         *string `gorm:"type:varchar(150);index" json:"email"`
	UserID        *uint   `gorm:"index" json:"user_id"`
	AddedByUserID uint    `json:"added_by_user_id"`
}

// Relation is an explicit, user-entered link between two persons
type Relation struct {
	BaseModel
	PersonID     uint   `gorm:"index;not null" json:"person_id"`
	RelatedToID  uint   `gorm:"not null" json:"related_to_id"`
	RelationType string `gorm:"type:varchar(50);not null" json:"relation_type"`

	RelatedTo *Person `gorm:"foreignKey:RelatedToID" json:"related_to,omitempty"`
}
