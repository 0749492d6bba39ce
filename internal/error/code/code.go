package code

// HTTP status codes.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// Common codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: request parameters failed validation.
	ErrValidation
	// ErrTokenInvalid - 401: missing or invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limited.
	ErrTooManyRequests
	// ErrForbidden - 403: caller lacks the required role.
	ErrForbidden
	// ErrNotFound - 404: generic missing resource.
	ErrNotFound
)

// User and auth codes (101xxx).
const (
	// ErrUserNotFound - 404.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401.
	ErrUserPasswordIncorrect
	// ErrUserNotVerified - 403.
	ErrUserNotVerified
	// ErrPasswordMismatch - 400: new and confirm password differ.
	ErrPasswordMismatch
)

// OTP codes (102xxx).
const (
	// ErrOTPNotFound - 400.
	ErrOTPNotFound int = iota + 102000
	// ErrOTPInvalid - 400.
	ErrOTPInvalid
	// ErrOTPExpired - 400.
	ErrOTPExpired
	// ErrOTPSendFailed - 500.
	ErrOTPSendFailed
)

// Family and person codes (103xxx).
const (
	// ErrFamilyNotFound - 404.
	ErrFamilyNotFound int = iota + 103000
	// ErrPersonNotFound - 404.
	ErrPersonNotFound
	// ErrPersonDuplicate - 409.
	ErrPersonDuplicate
)

// Community codes (104xxx).
const (
	// ErrCommunityNotFound - 404.
	ErrCommunityNotFound int = iota + 104000
	// ErrNotCommunityMember - 400.
	ErrNotCommunityMember
	// ErrAlreadyMember - 400.
	ErrAlreadyMember
	// ErrInvalidInviteCode - 404.
	ErrInvalidInviteCode
	// ErrHeadMustTransfer - 403.
	ErrHeadMustTransfer
)

// Database codes (105xxx).
const (
	// ErrDatabase - 500.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404.
	ErrRecordNotFound
)

// Content codes (106xxx).
const (
	// ErrPostNotFound - 404.
	ErrPostNotFound int = iota + 106000
	// ErrCommentNotFound - 404.
	ErrCommentNotFound
	// ErrEventNotFound - 404.
	ErrEventNotFound
	// ErrInvalidMedia - 400.
	ErrInvalidMedia
	// ErrUploadFailed - 500.
	ErrUploadFailed
)

// Notification codes (107xxx).
const (
	// ErrNotificationNotFound - 404.
	ErrNotificationNotFound int = iota + 107000
)
