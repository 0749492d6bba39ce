package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// InterfaceCommunityController defines the community controller interface
type InterfaceCommunityController interface {
	Create()
	Join()
	Members()
	Leave()
	TransferHead()
	RemoveMember()
	Mine()
	Dashboard()
}

// CommunityController handles communities and membership
type CommunityController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCommunityController creates a new community controller
func NewCommunityController(ctx *gin.Context, container *container.ServiceContainer) *CommunityController {
	return &CommunityController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateCommunityRequest is the community creation payload
type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required" example:"Green Park"`
	Location    string `json:"location" example:"Pune"`
	Description string `json:"description" example:"Residents of Green Park"`
}

// JoinCommunityRequest carries an invite code
type JoinCommunityRequest struct {
	InviteCode string `json:"invite_code" binding:"required" example:"K7M2QX"`
}

// TransferHeadRequest names the new head
type TransferHeadRequest struct {
	NewHeadUserID uint `json:"new_head_user_id" binding:"required" example:"7"`
}

func (c *CommunityController) service() services.InterfaceCommunityService {
	return c.Container.GetService("community").(services.InterfaceCommunityService)
}

// Create makes a community headed by the caller
// @Summary      Create community
// @Tags         Community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCommunityRequest true "Community"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/communities/create-community [post]
func (c *CommunityController) Create() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var req CreateCommunityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Community name is required")
		return
	}

	community, err := c.service().Create(userID, req.Name, req.Location, req.Description)
	if err != nil {
		handleServiceError(c.Ctx, err, "Community creation failed")
		return
	}
	response.Created(c.Ctx, "Community created", gin.H{
		"community_id": community.ID,
		"invite_code":  community.InviteCode,
	})
}

// Join adds the caller to the community of an invite code
// @Summary      Join community
// @Tags         Community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JoinCommunityRequest true "Invite code"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/communities/join-community [post]
func (c *CommunityController) Join() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var req JoinCommunityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invite code is required")
		return
	}

	community, err := c.service().Join(userID, req.InviteCode)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to join")
		return
	}
	response.Created(c.Ctx, "Joined community successfully", gin.H{"community_id": community.ID})
}

// Members lists the caller's community
// @Summary      List members
// @Tags         Community
// @Produce      json
// @Security     BearerAuth
// @Param        location query string false "Location contains"
// @Param        name query string false "Name contains"
// @Param        role query string false "Exact role"
// @Success      200  {array}  services.MemberView
// @Failure      400  {object}  ErrorResponse
// @Router       /api/communities/members [get]
func (c *CommunityController) Members() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	members, err := c.service().Members(userID, services.MemberFilter{
		Location: c.Ctx.Query("location"),
		Name:     c.Ctx.Query("name"),
		Role:     c.Ctx.Query("role"),
	})
	if err != nil {
		handleServiceError(c.Ctx, err, "DB error")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Members fetched", gin.H{"members": members})
}

// Leave removes the caller from the community
// @Summary      Leave community
// @Tags         Community
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/communities/leave-community [delete]
func (c *CommunityController) Leave() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().Leave(userID); err != nil {
		handleServiceError(c.Ctx, err, "Error leaving community")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Left community successfully", nil)
}

// TransferHead hands the head role to another member
// @Summary      Transfer head
// @Tags         Community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TransferHeadRequest true "New head"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/communities/transfer-head [put]
func (c *CommunityController) TransferHead() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var req TransferHeadRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "new_head_user_id is required")
		return
	}

	if err := c.service().TransferHead(userID, req.NewHeadUserID); err != nil {
		handleServiceError(c.Ctx, err, "Transfer failed")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Head role transferred", nil)
}

// RemoveMember removes a member from the caller's community
// @Summary      Remove member
// @Tags         Community
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/communities/remove-member/{userId} [delete]
func (c *CommunityController) RemoveMember() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	targetID, ok := uintParam(c.Ctx, "userId", "user ID")
	if !ok {
		return
	}

	if err := c.service().RemoveMember(userID, targetID); err != nil {
		handleServiceError(c.Ctx, err, "Failed to remove user")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Member removed", nil)
}

// Mine returns the caller's community and role
// @Summary      My community
// @Tags         Community
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.CommunityView
// @Failure      400  {object}  ErrorResponse
// @Router       /api/communities/my-community [get]
func (c *CommunityController) Mine() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	community, err := c.service().MyCommunity(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "DB error")
		return
	}
	response.Success(c.Ctx, gin.H{"community": community})
}

// Dashboard counts activity in the caller's community
// @Summary      Community dashboard
// @Tags         Community
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.DashboardStats
// @Router       /api/communities/dashboard [get]
func (c *CommunityController) Dashboard() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	stats, err := c.service().Dashboard(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch dashboard stats")
		return
	}
	response.Success(c.Ctx, stats)
}

// HandleCommunityFunc returns a gin handler for community requests
func HandleCommunityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCommunityController(ctx, container)

		switch method {
		case "create":
			controller.Create()
		case "join":
			controller.Join()
		case "members":
			controller.Members()
		case "leave":
			controller.Leave()
		case "transferHead":
			controller.TransferHead()
		case "removeMember":
			controller.RemoveMember()
		case "mine":
			controller.Mine()
		case "dashboard":
			controller.Dashboard()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
