package handlers

import (
	"driveline/internal/adapters/http/middleware"
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.Register(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Registration successful", user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// Logout handles POST /api/auth/logout. Revoking an unknown token still
// succeeds, so repeating the call is harmless.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)

	if err := h.authService.Revoke(c.UserContext(), token); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Logged out", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	resp := principal.User.ToResponse()
	resp.Role = principal.Role
	return response.Success(c, "", resp)
}
