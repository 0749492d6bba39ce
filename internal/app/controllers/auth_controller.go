package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// InterfaceAuthController defines the auth controller interface
type InterfaceAuthController interface {
	SendOTP()
	Register()
	Login()
	RequestReset()
	ResetPassword()
}

// AuthController handles registration, login and password recovery
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new auth controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// EmailRequest carries a single email address
type EmailRequest struct {
	Email string `json:"email" binding:"required,email" example:"asha@example.com"`
}

// RegisterRequest is the OTP confirmed registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Asha"`
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Phone    string `json:"phone" example:"9876543210"`
	Password string `json:"password" binding:"required" example:"secret"`
	OTP      string `json:"otp" binding:"required" example:"4821"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// ResetPasswordRequest is the password reset payload
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required" example:"asha@example.com"`
	OTP             string `json:"otp" binding:"required" example:"4821"`
	NewPassword     string `json:"new_password" binding:"required" example:"newsecret"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"newsecret"`
}

func (c *AuthController) service() services.InterfaceAuthService {
	return c.Container.GetService("auth").(services.InterfaceAuthService)
}

func sentMessage(resent bool) string {
	if resent {
		return "OTP resent (still valid)"
	}
	return "New OTP sent successfully"
}

// SendOTP mails a registration code
// @Summary      Send registration OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body EmailRequest true "Email"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /auth/send-otp [post]
func (c *AuthController) SendOTP() {
	var req EmailRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Email is required")
		return
	}

	resent, err := c.service().SendRegisterOTP(req.Email)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to send OTP")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, sentMessage(resent), nil)
}

// Register creates a verified account from a valid OTP
// @Summary      Register with OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Name, email, password, and OTP are required")
		return
	}

	user, err := c.service().Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		handleServiceError(c.Ctx, err, "Registration failed")
		return
	}
	response.Created(c.Ctx, "Registered successfully with OTP verification", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Login issues an access token
// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  services.LoginResult
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Email and password are required")
		return
	}

	result, err := c.service().Login(req.Email, req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err, "Login failed")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Login successful", result)
}

// RequestReset mails a password reset code
// @Summary      Request password reset OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body EmailRequest true "Email"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/request-reset [post]
func (c *AuthController) RequestReset() {
	var req EmailRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Email is required")
		return
	}

	resent, err := c.service().RequestPasswordReset(req.Email)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to send OTP")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, sentMessage(resent), nil)
}

// ResetPassword sets a new password from a valid reset OTP
// @Summary      Reset password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Reset"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/reset-password [post]
func (c *AuthController) ResetPassword() {
	var req ResetPasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "All fields are required")
		return
	}

	err := c.service().ResetPassword(req.Email, req.OTP, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		handleServiceError(c.Ctx, err, "Password update failed")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Password reset successful", nil)
}

// HandleAuthFunc returns a gin handler for auth requests
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "sendOTP":
			controller.SendOTP()
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "requestReset":
			controller.RequestReset()
		case "resetPassword":
			controller.ResetPassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
