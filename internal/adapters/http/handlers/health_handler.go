package handlers

import (
	"driveline/internal/config"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles GET /
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "driveline API", fiber.Map{
		"service": "driveline",
	})
}

// Check handles GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable")
	}

	return response.Success(c, "ok", fiber.Map{
		"status": "healthy",
	})
}
