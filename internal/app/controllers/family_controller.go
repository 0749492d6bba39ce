package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// FamilyController handles family records
type FamilyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFamilyController creates a new family controller
func NewFamilyController(ctx *gin.Context, container *container.ServiceContainer) *FamilyController {
	return &FamilyController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterFamilyRequest is the family registration payload
type RegisterFamilyRequest struct {
	FamilyName string `json:"family_name" binding:"required" example:"Kulkarni"`
	Address    string `json:"address" example:"12 Green Park, Pune"`
}

func (c *FamilyController) service() services.InterfaceFamilyService {
	return c.Container.GetService("family").(services.InterfaceFamilyService)
}

// Register creates a family owned by the caller
// @Summary      Register family
// @Tags         Family
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RegisterFamilyRequest true "Family"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/register-family [post]
func (c *FamilyController) Register() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var req RegisterFamilyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Family name is required")
		return
	}

	family, err := c.service().Register(userID, req.FamilyName, req.Address)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to register family")
		return
	}
	response.Created(c.Ctx, "Family registered successfully", gin.H{"familyId": family.ID})
}

// List returns the id and name of every family
// @Summary      List families
// @Tags         Family
// @Produce      json
// @Success      200  {array}  services.FamilySummary
// @Router       /api/families [get]
func (c *FamilyController) List() {
	families, err := c.service().List()
	if err != nil {
		handleServiceError(c.Ctx, err, "Database error")
		return
	}
	response.Success(c.Ctx, gin.H{"families": families})
}

// Mine returns the caller's family with its members
// @Summary      My family
// @Tags         Family
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.FamilyDetails
// @Router       /api/my-family [get]
func (c *FamilyController) Mine() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	details, err := c.service().MyFamily(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Database error")
		return
	}
	response.Success(c.Ctx, details)
}

// ByPerson returns the family a person belongs to
// @Summary      Family by person
// @Tags         Family
// @Produce      json
// @Param        personId path int true "Person ID"
// @Success      200  {object}  services.FamilyDetails
// @Router       /api/family-by-person/{personId} [get]
func (c *FamilyController) ByPerson() {
	personID, ok := uintParam(c.Ctx, "personId", "person ID")
	if !ok {
		return
	}

	details, err := c.service().ByPerson(personID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Database error")
		return
	}
	response.Success(c.Ctx, details)
}

// HandleFamilyFunc returns a gin handler for family requests
func HandleFamilyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFamilyController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "list":
			controller.List()
		case "mine":
			controller.Mine()
		case "byPerson":
			controller.ByPerson()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
