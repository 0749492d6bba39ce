package models

import "time"

// OTPPurpose distinguishes registration codes from password reset codes
type OTPPurpose string

const (
	OTPPurposeRegister OTPPurpose = "register"
	OTPPurposeReset    OTPPurpose = "reset"
)

// OTPVerification is the single outstanding code of one email address
type OTPVerification struct {
	Email     string     `gorm:"type:varchar(150);primaryKey" json:"email"`
	OTP       string     `gorm:"column:otp;type:varchar(4);not null" json:"otp"`
	Purpose   OTPPurpose `gorm:"type:varchar(20);not null" json:"purpose"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Valid reports whether the code may still be used at now (inclusive)
func (o *OTPVerification) Valid(now time.Time) bool {
	return !now.After(o.ExpiresAt)
}
