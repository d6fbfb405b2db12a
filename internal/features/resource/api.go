package resource

import (
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ResourceApi struct {
	controller *ResourceController
	config     *config.Config
}

func NewResourceApi(controller *ResourceController, config *config.Config) *ResourceApi {
	return &ResourceApi{
		controller: controller,
		config:     config,
	}
}

func (h *ResourceApi) Setup(app *fiber.App) {
	resources := app.Group("/api/resources", middleware.AuthMiddleware(h.config.SkipAuth))

	resources.Get("/", h.controller.ListResources)
	resources.Post("/", h.controller.CreateResource)
	resources.Get("/:id", h.controller.GetResource)
	resources.Put("/:id", h.controller.UpdateResource)
	resources.Delete("/:id", h.controller.DeleteResource)
}
