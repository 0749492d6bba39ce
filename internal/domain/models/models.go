package models

// All lists every table for migrations, in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&OTPVerification{},
		&PrivacySetting{},
		&Family{},
		&Person{},
		&Relation{},
		&Community{},
		&CommunityUser{},
		&Post{},
		&Comment{},
		&Like{},
		&Event{},
		&Notification{},
		&FAQ{},
		&Feedback{},
	}
}
