package handlers

import (
	"driveline/internal/adapters/http/middleware"
	"driveline/internal/core/domain"
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile and admin user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	profile, err := h.userService.GetProfile(c.UserContext(), principal.User.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", profile)
}

// UpdateProfile handles PATCH /api/users/me
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	var patch services.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.UserContext(), principal.User.ID, &patch)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profile updated", profile)
}

// ChangePassword handles PUT /api/users/me/password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	var input struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.ChangePassword(c.UserContext(), principal.User.ID, input.Password); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Password changed", nil)
}

// DeleteAccount handles DELETE /api/users/me
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	if err := h.userService.DeleteAccount(c.UserContext(), principal.User.ID); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Account deleted", nil)
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	users, err := h.userService.ListUsers(c.UserContext(), principal.User.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", users)
}

// GetUser handles GET /api/admin/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", user)
}

// CreateUser handles POST /api/admin/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input struct {
		services.RegisterInput
		Role domain.Role `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Role == "" {
		input.Role = domain.RoleMember
	}

	user, err := h.userService.CreateUser(c.UserContext(), &input.RegisterInput, input.Role)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "User created", user)
}

// UpdateUser handles PATCH /api/admin/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch services.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.UserContext(), id, &patch)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "User updated", user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.UserContext(), principal.User.ID, id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "User deleted", nil)
}
