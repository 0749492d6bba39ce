package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/error/code"
)

// Response is the envelope of every API reply
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, http.StatusOK, code.GetMessage(code.ErrSuccess), data)
}

// Created writes a 201 envelope
func Created(c *gin.Context, message string, data interface{}) {
	SuccessWithMessage(c, http.StatusCreated, message, data)
}

// SuccessWithMessage writes a success envelope with a custom status and message
func SuccessWithMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Code:    code.ErrSuccess,
		Message: message,
		Data:    data,
	})
}

// Fail writes the default message and status of errorCode
func Fail(c *gin.Context, errorCode int, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Data:    data,
	})
}

// FailWithMessage writes errorCode with a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// ParamError writes a 400 validation envelope
func ParamError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrValidation)
	}
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError writes a 500 envelope
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// NotFound writes a 404 envelope
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrNotFound)
	}
	FailWithMessage(c, code.ErrNotFound, message, nil)
}

// Unauthorized writes a 401 envelope
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrTokenInvalid)
	}
	FailWithMessage(c, code.ErrTokenInvalid, message, nil)
}

// Forbidden writes a 403 envelope
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrForbidden)
	}
	FailWithMessage(c, code.ErrForbidden, message, nil)
}
