package task

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TaskController struct {
	Service TaskService
}

func NewTaskController(service TaskService) *TaskController {
	return &TaskController{Service: service}
}

// ListTasks godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Param        project query string false "Project ID"
// @Param        assignee query string false "Assignee user ID"
// @Param        status query string false "Status"
// @Success      200  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks [get]
func (ctrl *TaskController) ListTasks(c *fiber.Ctx) error {
	page, limit := api.Pagination(c)
	q := Query{
		Project:  c.Query("project"),
		Assignee: c.Query("assignee"),
		Status:   c.Query("status"),
	}

	tasks, total, err := ctrl.Service.ListTasks(c.UserContext(), middleware.GetClaims(c), q, page, limit)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, api.Page{Items: tasks, Total: total, Page: page, Limit: limit})
}

// ListProjectTasks godoc
// @Summary      Tasks of a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {array} Task
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/projects/{id}/tasks [get]
func (ctrl *TaskController) ListProjectTasks(c *fiber.Ctx) error {
	tasks, err := ctrl.Service.ListProjectTasks(c.UserContext(), middleware.GetClaims(c), c.Params("id"))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, tasks)
}

// MyTasks godoc
// @Summary      Tasks assigned to the caller
// @Tags         tasks
// @Produce      json
// @Param        status query string false "Status"
// @Success      200  {array} Task
// @Security     BearerAuth
// @Router       /api/tasks/mine [get]
func (ctrl *TaskController) MyTasks(c *fiber.Ctx) error {
	tasks, err := ctrl.Service.MyTasks(c.UserContext(), middleware.GetClaims(c), c.Query("status"))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, tasks)
}

// GetTask godoc
// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200  {object} Task
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id} [get]
func (ctrl *TaskController) GetTask(c *fiber.Ctx) error {
	t, err := ctrl.Service.GetTask(c.UserContext(), middleware.GetClaims(c), c.Params("id"))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, t)
}

// CreateTask godoc
// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        input body TaskRequest true "Task"
// @Success      201  {object} Task
// @Failure      400  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks [post]
func (ctrl *TaskController) CreateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	t, err := ctrl.Service.CreateTask(c.UserContext(), middleware.GetClaims(c), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusCreated, t)
}

// UpdateTask godoc
// @Summary      Replace task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        input body TaskRequest true "Task"
// @Success      200  {object} Task
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id} [put]
func (ctrl *TaskController) UpdateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	t, err := ctrl.Service.UpdateTask(c.UserContext(), middleware.GetClaims(c), c.Params("id"), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, t)
}

// UpdateStatus godoc
// @Summary      Move task to another status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        input body StatusRequest true "Status"
// @Success      200  {object} map[string]interface{}
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id}/status [patch]
func (ctrl *TaskController) UpdateStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	if err := ctrl.Service.UpdateStatus(c.UserContext(), middleware.GetClaims(c), c.Params("id"), req.Status); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"status": req.Status})
}

// DeleteTask godoc
// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200  {object} map[string]interface{}
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/tasks/{id} [delete]
func (ctrl *TaskController) DeleteTask(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteTask(c.UserContext(), middleware.GetClaims(c), c.Params("id")); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"message": "Task deleted"})
}
