package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
	"github.com/RealSujal/community-app/internal/infrastructure/database"
)

// HealthCheckController answers liveness and readiness probes
type HealthCheckController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthCheckController creates a health check controller
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{
		Ctx:       ctx,
		Container: container,
	}
}

// Ping reports that the process is up
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /ping [get]
func (h *HealthCheckController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Health checks the database connection
// @Summary      Readiness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /health [get]
func (h *HealthCheckController) Health() {
	db := h.Container.GetService("db").(*gorm.DB)
	if err := database.Ping(db); err != nil {
		response.FailWithMessage(h.Ctx, code.ErrDatabase, "database unavailable", gin.H{"database": "down"})
		return
	}
	response.Success(h.Ctx, gin.H{
		"status":   "healthy",
		"database": "up",
	})
}

// HandleHealthFunc returns a gin handler for health requests
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "health":
			controller.Health()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
