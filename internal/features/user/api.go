package user

import (
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all user-related routes
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth))

	// Own profile
	users.Get("/profile", h.controller.GetProfile)
	users.Put("/profile", h.controller.UpdateProfile)
	users.Post("/onboarding", h.controller.CompleteOnboarding)

	// Organization administration
	admin := middleware.AdminMiddleware()
	users.Get("/", admin, h.controller.ListUsers)
	users.Get("/:id", admin, h.controller.GetUser)
	users.Put("/:id/admin", admin, h.controller.SetAdmin)
	users.Delete("/:id", admin, h.controller.DeleteUser)
}
