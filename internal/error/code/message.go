package code

var codeMessageMap = map[int]string{
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request body",
	ErrValidation:      "invalid request parameters",
	ErrTokenInvalid:    "invalid token",
	ErrTooManyRequests: "too many requests, please try again later",
	ErrForbidden:       "unauthorized",
	ErrNotFound:        "resource not found",

	ErrUserNotFound:          "user not found",
	ErrUserAlreadyExist:      "email already exists",
	ErrUserPasswordIncorrect: "invalid email or password",
	ErrUserNotVerified:       "please verify your email first",
	ErrPasswordMismatch:      "passwords do not match",

	ErrOTPNotFound:   "OTP not found, please request again",
	ErrOTPInvalid:    "invalid OTP",
	ErrOTPExpired:    "OTP expired",
	ErrOTPSendFailed: "failed to send OTP",

	ErrFamilyNotFound:  "family not found",
	ErrPersonNotFound:  "person not found",
	ErrPersonDuplicate: "a member with this email already exists in the family",

	ErrCommunityNotFound:  "community not found",
	ErrNotCommunityMember: "user is not part of any community",
	ErrAlreadyMember:      "already a member",
	ErrInvalidInviteCode:  "invalid invite code",
	ErrHeadMustTransfer:   "head must transfer role first",

	ErrDatabase:       "database error",
	ErrRecordNotFound: "record not found",

	ErrPostNotFound:    "post not found",
	ErrCommentNotFound: "comment not found",
	ErrEventNotFound:   "event not found",
	ErrInvalidMedia:    "invalid file type",
	ErrUploadFailed:    "upload failed",

	ErrNotificationNotFound: "notification not found or unauthorized",
}

var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,
	ErrNotFound:        StatusNotFound,

	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserNotVerified:       StatusForbidden,
	ErrPasswordMismatch:      StatusBadRequest,

	ErrOTPNotFound:   StatusBadRequest,
	ErrOTPInvalid:    StatusBadRequest,
	ErrOTPExpired:    StatusBadRequest,
	ErrOTPSendFailed: StatusInternalServerError,

	ErrFamilyNotFound:  StatusNotFound,
	ErrPersonNotFound:  StatusNotFound,
	ErrPersonDuplicate: StatusConflict,

	ErrCommunityNotFound:  StatusNotFound,
	ErrNotCommunityMember: StatusBadRequest,
	ErrAlreadyMember:      StatusBadRequest,
	ErrInvalidInviteCode:  StatusNotFound,
	ErrHeadMustTransfer:   StatusForbidden,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,

	ErrPostNotFound:    StatusNotFound,
	ErrCommentNotFound: StatusNotFound,
	ErrEventNotFound:   StatusNotFound,
	ErrInvalidMedia:    StatusBadRequest,
	ErrUploadFailed:    StatusInternalServerError,

	ErrNotificationNotFound: StatusNotFound,
}

// GetMessage returns the default message of a code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status of a code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
