package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
)

// InterfaceUserController defines the user controller interface
type InterfaceUserController interface {
	EditProfile()
	ChangePassword()
	UploadProfilePicture()
	Me()
	CommunityMember()
	Promote()
	Demote()
	PublicProfile()
}

// UserController handles profile requests
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a new user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// ChangePasswordRequest is the change password payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" example:"secret"`
	NewPassword     string `json:"newPassword" example:"newsecret"`
	ConfirmPassword string `json:"confirmPassword" example:"newsecret"`
}

func (c *UserController) users() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

func (c *UserController) communities() services.InterfaceCommunityService {
	return c.Container.GetService("community").(services.InterfaceCommunityService)
}

// EditProfile updates the non-empty fields of the caller's profile
// @Summary      Edit profile
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ProfileInput true "Profile fields"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/users/edit-profile [patch]
func (c *UserController) EditProfile() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var input services.ProfileInput
	if err := c.Ctx.ShouldBindJSON(&input); err != nil {
		response.ParamError(c.Ctx, "Invalid profile fields")
		return
	}

	if err := c.users().EditProfile(userID, input); err != nil {
		handleServiceError(c.Ctx, err, "Profile update failed")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Profile updated successfully", nil)
}

// ChangePassword replaces the caller's password
// @Summary      Change password
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/users/change-password [patch]
func (c *UserController) ChangePassword() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "All fields are required")
		return
	}

	err := c.users().ChangePassword(userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to update password")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Password changed successfully", nil)
}

// UploadProfilePicture stores the multipart file "profile"
// @Summary      Upload profile picture
// @Tags         User
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profile formData file true "Image"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /api/users/upload-profile-picture [post]
func (c *UserController) UploadProfilePicture() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	file, err := c.Ctx.FormFile("profile")
	if err != nil {
		response.ParamError(c.Ctx, "No file uploaded")
		return
	}

	path, err := c.users().UploadProfilePicture(userID, file)
	if err != nil {
		handleServiceError(c.Ctx, err, "Upload failed")
		return
	}
	files := c.Container.GetService("files").(*storage.FileStore)
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Profile picture uploaded", gin.H{
		"profile_picture":     path,
		"profile_picture_url": files.URL(path),
	})
}

// Me returns the caller's profile with the community role
// @Summary      Current user
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.Profile
// @Router       /api/users/me [get]
func (c *UserController) Me() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	profile, err := c.users().Me(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Error fetching user info")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "User info fetched", gin.H{"user": profile})
}

// CommunityMember returns a member of the caller's community
// @Summary      Community member
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {object}  services.MemberView
// @Failure      404  {object}  ErrorResponse
// @Router       /api/users/user/{userId} [get]
func (c *UserController) CommunityMember() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	targetID, ok := uintParam(c.Ctx, "userId", "user ID")
	if !ok {
		return
	}

	member, err := c.communities().Member(userID, targetID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch user")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "User fetched successfully", gin.H{"user": member})
}

// Promote makes a member an admin
// @Summary      Promote to admin
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/users/promote/{userId} [put]
func (c *UserController) Promote() {
	c.changeRole(true)
}

// Demote makes an admin a plain member
// @Summary      Demote to member
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/users/demote/{userId} [put]
func (c *UserController) Demote() {
	c.changeRole(false)
}

func (c *UserController) changeRole(promote bool) {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	targetID, ok := uintParam(c.Ctx, "userId", "user ID")
	if !ok {
		return
	}

	var err error
	message := "User promoted to admin"
	if promote {
		err = c.communities().Promote(userID, targetID)
	} else {
		err = c.communities().Demote(userID, targetID)
		message = "User demoted to member"
	}
	if err != nil {
		handleServiceError(c.Ctx, err, "Role change failed")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, message, nil)
}

// PublicProfile returns a profile with its privacy settings applied
// @Summary      Public profile
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {object}  services.PublicProfile
// @Failure      404  {object}  ErrorResponse
// @Router       /api/users/{userId} [get]
func (c *UserController) PublicProfile() {
	viewerID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	userID, ok := uintParam(c.Ctx, "userId", "user ID")
	if !ok {
		return
	}

	profile, err := c.users().PublicProfile(viewerID, userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch profile")
		return
	}
	response.Success(c.Ctx, profile)
}

// HandleUserFunc returns a gin handler for user requests
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "editProfile":
			controller.EditProfile()
		case "changePassword":
			controller.ChangePassword()
		case "uploadProfilePicture":
			controller.UploadProfilePicture()
		case "me":
			controller.Me()
		case "communityMember":
			controller.CommunityMember()
		case "promote":
			controller.Promote()
		case "demote":
			controller.Demote()
		case "publicProfile":
			controller.PublicProfile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
