package middleware

import (
	"strings"

	"driveline/internal/core/domain"
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals key for the authenticated principal
const PrincipalKey = "principal"

// AuthMiddleware resolves the bearer token to a principal. Validation slides
// the session's expiration forward, so any authenticated request keeps the
// session alive.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			return response.Unauthorized(c, "Bearer token required")
		}

		principal, err := authService.Validate(c.UserContext(), token)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired session")
		}

		c.Locals(PrincipalKey, principal)
		c.Locals("token", token)

		return c.Next()
	}
}

// RoleMiddleware enforces a role requirement. Operators satisfy every
// requirement; the check happens here and nowhere else.
func RoleMiddleware(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals(PrincipalKey).(*services.Principal)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !principal.Role.Satisfies(required) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// OperatorOnly middleware allows only the operator role
func OperatorOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleOperator)
}

// GetPrincipal extracts the authenticated principal from locals
func GetPrincipal(c *fiber.Ctx) *services.Principal {
	principal, _ := c.Locals(PrincipalKey).(*services.Principal)
	return principal
}
