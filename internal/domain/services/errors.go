package services

import "errors"

// Sentinel errors returned by the domain services. Controllers map them to
// business codes; anything else is treated as a database failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUserNotVerified   = errors.New("please verify your email first")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrWrongPassword     = errors.New("current password is incorrect")

	ErrOTPNotFound = errors.New("OTP not found, please request again")
	ErrOTPInvalid  = errors.New("invalid OTP")
	ErrOTPExpired  = errors.New("OTP expired")
	ErrOTPSend     = errors.New("failed to send OTP")

	ErrFamilyNotFound  = errors.New("family not found")
	ErrPersonNotFound  = errors.New("person not found")
	ErrPersonDuplicate = errors.New("a member with this email already exists in the family")

	ErrCommunityNotFound  = errors.New("community not found")
	ErrNotCommunityMember = errors.New("user is not part of any community")
	ErrAlreadyMember      = errors.New("already a member")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrHeadMustTransfer   = errors.New("head must transfer role first")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidMedia    = errors.New("invalid file type")

	ErrNotificationNotFound = errors.New("notification not found or unauthorized")
)
