package analytics

import (
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsApi struct {
	controller *AnalyticsController
	config     *config.Config
}

func NewAnalyticsApi(controller *AnalyticsController, config *config.Config) *AnalyticsApi {
	return &AnalyticsApi{
		controller: controller,
		config:     config,
	}
}

func (h *AnalyticsApi) Setup(app *fiber.App) {
	analytics := app.Group("/api/analytics", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware())

	analytics.Get("/overview", h.controller.Overview)
	analytics.Get("/roles", h.controller.Roles)
	analytics.Get("/experience", h.controller.Experience)
	analytics.Get("/skills", h.controller.Skills)
	analytics.Get("/work-preferences", h.controller.WorkPreferences)
	analytics.Get("/disliked-areas", h.controller.DislikedAreas)
	analytics.Get("/departments", h.controller.Departments)
	analytics.Get("/users-by-role/:role", h.controller.UsersByRole)
	analytics.Get("/export", h.controller.Export)
	analytics.Get("/history", h.controller.History)
}
