package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lelefon-gaming/lelefon-api/internal/auth"
	"github.com/lelefon-gaming/lelefon-api/internal/identity"
)

// Locals keys set by JWTAuth for downstream handlers.
const (
	LocalUserEmail = "user_email"
	LocalUserRole  = "user_role"
)

// JWTAuth returns a middleware that validates bearer access tokens and
// stores the account email and role in the request locals.
func JWTAuth(tokens *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		email, role, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalUserEmail, email)
		c.Locals(LocalUserRole, role)
		return c.Next()
	}
}

// AdminOnly rejects requests whose token does not carry the admin role.
// Must run after JWTAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalUserRole).(string)
		if role != identity.RoleAdmin {
			return fiber.NewError(http.StatusForbidden, "administrator access required")
		}
		return c.Next()
	}
}
