package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// HelpController serves FAQs, feedback and the help chat
type HelpController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHelpController creates a new help controller
func NewHelpController(ctx *gin.Context, container *container.ServiceContainer) *HelpController {
	return &HelpController{
		Ctx:       ctx,
		Container: container,
	}
}

// FeedbackRequest is a rating with an optional message
type FeedbackRequest struct {
	Rating    int    `json:"rating" example:"5"`
	Message   string `json:"message" example:"Great app"`
	WantReply bool   `json:"wantReply"`
}

// ChatRequest is one message to the help bot
type ChatRequest struct {
	Message string `json:"message" binding:"required" example:"forgot password"`
}

func (c *HelpController) service() services.InterfaceHelpService {
	return c.Container.GetService("help").(services.InterfaceHelpService)
}

// FAQs lists the frequently asked questions
// @Summary      List FAQs
// @Tags         Help
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.FAQ
// @Router       /api/faqs [get]
func (c *HelpController) FAQs() {
	faqs, err := c.service().ListFAQs()
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to load FAQs")
		return
	}
	response.Success(c.Ctx, faqs)
}

// Feedback stores a rating from the caller
// @Summary      Submit feedback
// @Tags         Help
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body FeedbackRequest true "Feedback"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /api/feedback [post]
func (c *HelpController) Feedback() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Rating must be between 1 and 5.")
		return
	}

	if _, err := c.service().SubmitFeedback(userID, req.Rating, req.Message, req.WantReply); err != nil {
		handleServiceError(c.Ctx, err, "Failed to save feedback")
		return
	}
	response.Created(c.Ctx, "Feedback submitted successfully", nil)
}

// Chat answers a help question
// @Summary      Help chat
// @Tags         Help
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChatRequest true "Message"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /api/ai-chat [post]
func (c *HelpController) Chat() {
	var req ChatRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Message is required.")
		return
	}

	reply, err := c.service().Chat(req.Message)
	if err != nil {
		handleServiceError(c.Ctx, err, "Chat failed")
		return
	}
	response.Success(c.Ctx, gin.H{"reply": reply})
}

// HandleHelpFunc returns a gin handler for help requests
func HandleHelpFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHelpController(ctx, container)

		switch method {
		case "faqs":
			controller.FAQs()
		case "feedback":
			controller.Feedback()
		case "chat":
			controller.Chat()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
