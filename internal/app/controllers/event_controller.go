package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// EventController handles community events
type EventController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEventController creates a new event controller
func NewEventController(ctx *gin.Context, container *container.ServiceContainer) *EventController {
	return &EventController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *EventController) service() services.InterfaceEventService {
	return c.Container.GetService("event").(services.InterfaceEventService)
}

// Create announces an event
// @Summary      Create event
// @Tags         Event
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name formData string true "Name"
// @Param        description formData string false "Description"
// @Param        event_date formData string true "YYYY-MM-DD"
// @Param        event_time formData string true "HH:MM"
// @Param        location formData string false "Location"
// @Param        image formData file false "Image"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/events/create [post]
func (c *EventController) Create() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var input services.EventInput
	if err := c.Ctx.ShouldBind(&input); err != nil {
		response.ParamError(c.Ctx, "Name, date, and time are required")
		return
	}
	image, ok := optionalFile(c.Ctx, "image")
	if !ok {
		return
	}

	event, err := c.service().Create(userID, input, image)
	if err != nil {
		handleServiceError(c.Ctx, err, "Event creation failed")
		return
	}
	response.Created(c.Ctx, "Event created successfully", gin.H{"event_id": event.ID})
}

// List returns the events of the caller's community
// @Summary      List events
// @Tags         Event
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  services.EventView
// @Router       /api/events [get]
func (c *EventController) List() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	events, err := c.service().List(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch events")
		return
	}
	response.Success(c.Ctx, gin.H{"events": events})
}

// Delete removes an event
// @Summary      Delete event
// @Tags         Event
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path int true "Event ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/events/{eventId} [delete]
func (c *EventController) Delete() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	eventID, ok := uintParam(c.Ctx, "eventId", "event ID")
	if !ok {
		return
	}

	if err := c.service().Delete(userID, eventID); err != nil {
		handleServiceError(c.Ctx, err, "Failed to delete event")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Event deleted successfully", nil)
}

// HandleEventFunc returns a gin handler for event requests
func HandleEventFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEventController(ctx, container)

		switch method {
		case "create":
			controller.Create()
		case "list":
			controller.List()
		case "delete":
			controller.Delete()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
