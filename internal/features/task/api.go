package task

import (
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TaskApi struct {
	controller *TaskController
	config     *config.Config
}

func NewTaskApi(controller *TaskController, config *config.Config) *TaskApi {
	return &TaskApi{
		controller: controller,
		config:     config,
	}
}

func (h *TaskApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	tasks := app.Group("/api/tasks", auth)
	tasks.Get("/", h.controller.ListTasks)
	tasks.Post("/", h.controller.CreateTask)
	tasks.Get("/mine", h.controller.MyTasks)
	tasks.Get("/:id", h.controller.GetTask)
	tasks.Put("/:id", h.controller.UpdateTask)
	tasks.Patch("/:id/status", h.controller.UpdateStatus)
	tasks.Delete("/:id", h.controller.DeleteTask)

	app.Get("/api/projects/:id/tasks", auth, h.controller.ListProjectTasks)
}
