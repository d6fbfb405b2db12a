package project

import (
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProjectApi struct {
	controller *ProjectController
	config     *config.Config
}

func NewProjectApi(controller *ProjectController, config *config.Config) *ProjectApi {
	return &ProjectApi{
		controller: controller,
		config:     config,
	}
}

func (h *ProjectApi) Setup(app *fiber.App) {
	projects := app.Group("/api/projects", middleware.AuthMiddleware(h.config.SkipAuth))

	projects.Get("/", h.controller.ListProjects)
	projects.Post("/", h.controller.CreateProject)
	projects.Get("/:id", h.controller.GetProject)
	projects.Put("/:id", h.controller.UpdateProject)
	projects.Delete("/:id", h.controller.DeleteProject)
}
