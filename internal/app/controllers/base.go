package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/app/middleware"
	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// ErrorResponse documents the failure envelope
type ErrorResponse struct {
	Code    int    `json:"code" example:"100003"`
	Message string `json:"message" example:"invalid request parameters"`
}

// MessageResponse documents a success envelope without data
type MessageResponse struct {
	Code    int    `json:"code" example:"100000"`
	Message string `json:"message" example:"success"`
}

// errorCodes maps service sentinels to business codes
var errorCodes = []struct {
	err  error
	code int
}{
	{services.ErrInvalidInput, code.ErrValidation},
	{services.ErrForbidden, code.ErrForbidden},
	{services.ErrUserNotFound, code.ErrUserNotFound},
	{services.ErrEmailTaken, code.ErrUserAlreadyExist},
	{services.ErrInvalidCredential, code.ErrUserPasswordIncorrect},
	{services.ErrWrongPassword, code.ErrUserPasswordIncorrect},
	{services.ErrUserNotVerified, code.ErrUserNotVerified},
	{services.ErrPasswordMismatch, code.ErrPasswordMismatch},
	{services.ErrOTPNotFound, code.ErrOTPNotFound},
	{services.ErrOTPInvalid, code.ErrOTPInvalid},
	{services.ErrOTPExpired, code.ErrOTPExpired},
	{services.ErrOTPSend, code.ErrOTPSendFailed},
	{services.ErrFamilyNotFound, code.ErrFamilyNotFound},
	{services.ErrPersonNotFound, code.ErrPersonNotFound},
	{services.ErrPersonDuplicate, code.ErrPersonDuplicate},
	{services.ErrCommunityNotFound, code.ErrCommunityNotFound},
	{services.ErrNotCommunityMember, code.ErrNotCommunityMember},
	{services.ErrAlreadyMember, code.ErrAlreadyMember},
	{services.ErrInvalidInviteCode, code.ErrInvalidInviteCode},
	{services.ErrHeadMustTransfer, code.ErrHeadMustTransfer},
	{services.ErrPostNotFound, code.ErrPostNotFound},
	{services.ErrCommentNotFound, code.ErrCommentNotFound},
	{services.ErrEventNotFound, code.ErrEventNotFound},
	{services.ErrInvalidMedia, code.ErrInvalidMedia},
	{services.ErrNotificationNotFound, code.ErrNotificationNotFound},
}

// handleServiceError writes the envelope matching err. Unknown errors are
// logged and reported as fallback.
func handleServiceError(ctx *gin.Context, err error, fallback string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			message := err.Error()
			// wrapped "<sentinel>: detail" keeps only the detail
			if detail := strings.TrimPrefix(message, e.err.Error()+": "); detail != message {
				message = detail
			}
			response.FailWithMessage(ctx, e.code, message, nil)
			return
		}
	}
	Logger.Error("%s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
	response.FailWithMessage(ctx, code.ErrDatabase, fallback, nil)
}

// currentUser returns the authenticated user id, writing 401 when absent
func currentUser(ctx *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Unauthorized(ctx, "")
	}
	return id, ok
}

// uintParam parses a positive path parameter, writing 400 when invalid
func uintParam(ctx *gin.Context, name, label string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || v == 0 {
		response.ParamError(ctx, "invalid "+label)
		return 0, false
	}
	return uint(v), true
}
