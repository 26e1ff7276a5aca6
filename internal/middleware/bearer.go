package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saifinance/loan-inquiry-api/internal/auth"
)

// Locals keys populated by BearerAuth for downstream handlers.
const (
	AdminIDKey       = "admin_id"
	AdminUsernameKey = "admin_username"
)

// BearerAuth returns a middleware that validates bearer tokens on protected
// routes. Missing, malformed, expired or mis-signed tokens are rejected before
// any store access; on success the decoded admin identity is attached to the
// request locals.
func BearerAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "No token, authorization denied"})
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := auth.VerifyToken(tokenStr, secret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Token is not valid"})
		}

		c.Locals(AdminIDKey, claims.Subject)
		c.Locals(AdminUsernameKey, claims.Username)
		return c.Next()
	}
}
