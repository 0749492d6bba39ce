package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// InterfacePrivacyController defines the privacy controller interface
type InterfacePrivacyController interface {
	GetFlags()
	SetFlag()
	GetSettings()
	ReplaceSettings()
}

// PrivacyController handles profile visibility settings
type PrivacyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPrivacyController creates a new privacy controller
func NewPrivacyController(ctx *gin.Context, container *container.ServiceContainer) *PrivacyController {
	return &PrivacyController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *PrivacyController) service() services.InterfacePrivacyService {
	return c.Container.GetService("privacy").(services.InterfacePrivacyService)
}

// GetFlags returns the settings keyed by short field name
// @Summary      Get privacy flags
// @Tags         Privacy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool
// @Router       /api/privacy [get]
func (c *PrivacyController) GetFlags() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	s, err := c.service().Get(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to load privacy settings")
		return
	}
	response.Success(c.Ctx, gin.H{
		"phone":        s.ShowPhone,
		"email":        s.ShowEmail,
		"dob":          s.ShowDOB,
		"address":      s.ShowAddress,
		"gender":       s.ShowGender,
		"social_links": s.ShowSocialLinks,
	})
}

// SetFlag updates one setting from a body like {"phone": false}
// @Summary      Update one privacy flag
// @Tags         Privacy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body map[string]bool true "Single field"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /api/privacy [put]
func (c *PrivacyController) SetFlag() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&body); err != nil || len(body) != 1 {
		response.ParamError(c.Ctx, "Exactly one field is required")
		return
	}

	for field, raw := range body {
		value, ok := raw.(bool)
		if !ok {
			// clients that send 0/1
			n, isNumber := raw.(float64)
			if !isNumber || (n != 0 && n != 1) {
				response.ParamError(c.Ctx, "Value must be a boolean")
				return
			}
			value = n == 1
		}
		if err := c.service().SetField(userID, field, value); err != nil {
			handleServiceError(c.Ctx, err, "Failed to update privacy settings")
			return
		}
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Updated", nil)
}

// GetSettings returns the full settings row
// @Summary      Get privacy settings
// @Tags         Privacy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.PrivacySetting
// @Router       /auth/privacy-settings [get]
func (c *PrivacyController) GetSettings() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	s, err := c.service().Get(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to load privacy settings")
		return
	}
	response.Success(c.Ctx, gin.H{"privacy": s})
}

// ReplaceSettings overwrites every flag; missing flags become true
// @Summary      Replace privacy settings
// @Tags         Privacy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.PrivacyInput true "Settings"
// @Success      200  {object}  models.PrivacySetting
// @Router       /auth/privacy-settings [put]
func (c *PrivacyController) ReplaceSettings() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var input services.PrivacyInput
	if err := c.Ctx.ShouldBindJSON(&input); err != nil {
		response.ParamError(c.Ctx, "Invalid privacy settings")
		return
	}

	s, err := c.service().Replace(userID, input)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to update privacy settings")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Privacy settings updated successfully", gin.H{"privacy": s})
}

// HandlePrivacyFunc returns a gin handler for privacy requests
func HandlePrivacyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPrivacyController(ctx, container)

		switch method {
		case "getFlags":
			controller.GetFlags()
		case "setFlag":
			controller.SetFlag()
		case "getSettings":
			controller.GetSettings()
		case "replaceSettings":
			controller.ReplaceSettings()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
