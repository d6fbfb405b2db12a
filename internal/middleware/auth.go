package middleware

import (
	"strings"

	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// DevUserID is injected as the caller when SKIP_AUTH is enabled.
const DevUserID = "000000000000000000000001"

// AuthMiddleware validates JWT tokens and injects user claims into context
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			c.Locals(utils.UserClaimsKey, &utils.UserClaims{
				UserID:       DevUserID,
				Organization: "dev",
				IsAdmin:      true,
			})
			return c.Next()
		}

		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return api.Fail(c, fiber.StatusUnauthorized, "Authorization header required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			return api.Fail(c, fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(utils.UserClaimsKey, claims)
		return c.Next()
	}
}

// GetClaims returns the authenticated caller, or nil outside AuthMiddleware.
func GetClaims(c *fiber.Ctx) *utils.UserClaims {
	claims, _ := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims
}

func bearerToken(header string) string {
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
