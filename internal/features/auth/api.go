package auth

import (
	"time"

	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
	limiter    *middleware.RateLimiter
}

func NewAuthApi(controller *AuthController, config *config.Config) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     config,
		limiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerWindow: config.AuthRatePerMinute,
			Window:            time.Minute,
		}),
	}
}

// Setup registers all auth-related routes
func (h *AuthApi) Setup(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public, rate limited per client IP
	limit := h.limiter.Handler(middleware.IPKeyExtractor)
	auth.Post("/register", limit, h.controller.Register)
	auth.Post("/login", limit, h.controller.Login)

	protected := middleware.AuthMiddleware(h.config.SkipAuth)
	auth.Get("/me", protected, h.controller.Me)
	auth.Put("/password", protected, h.controller.ChangePassword)
}
