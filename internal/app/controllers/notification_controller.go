package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// NotificationController serves the caller's notifications
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController creates a new notification controller
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *NotificationController) service() services.InterfaceNotificationService {
	return c.Container.GetService("notification").(services.InterfaceNotificationService)
}

// List returns the caller's notifications, newest first
// @Summary      List notifications
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Notification
// @Router       /api/notifications [get]
func (c *NotificationController) List() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	notifications, err := c.service().List(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Error fetching notifications")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Notifications fetched", notifications)
}

// MarkSeen marks one notification of the caller as seen
// @Summary      Mark notification seen
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/notifications/{id}/seen [patch]
func (c *NotificationController) MarkSeen() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	id, ok := uintParam(c.Ctx, "id", "notification ID")
	if !ok {
		return
	}

	if err := c.service().MarkSeen(userID, id); err != nil {
		handleServiceError(c.Ctx, err, "Failed to mark notification as seen")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Notification marked as seen", nil)
}

// MarkAllSeen marks every unseen notification of the caller as seen
// @Summary      Mark all notifications seen
// @Tags         Notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Router       /api/notifications/mark-all-seen [patch]
func (c *NotificationController) MarkAllSeen() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	n, err := c.service().MarkAllSeen(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to mark notifications")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK,
		fmt.Sprintf("%d notifications marked as seen", n), gin.H{"updated": n})
}

// HandleNotificationFunc returns a gin handler for notification requests
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "markSeen":
			controller.MarkSeen()
		case "markAllSeen":
			controller.MarkAllSeen()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
