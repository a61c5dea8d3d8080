package handlers

import (
	"errors"

	"driveline/internal/core/domain"
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to HTTP statuses. The specific conflict
// sentinels get their historical statuses; everything else falls through to
// the error kind.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrVINTaken):
		return response.PaymentRequired(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}
