package middleware

import (
	"vfx-dashboard/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware only lets admins of the caller's organization through.
// Must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if !claims.IsAdmin {
			return api.Fail(c, fiber.StatusForbidden, "Access denied: Admin role required")
		}
		return c.Next()
	}
}
