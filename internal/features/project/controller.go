package project

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProjectController struct {
	Service ProjectService
}

func NewProjectController(service ProjectService) *ProjectController {
	return &ProjectController{Service: service}
}

// ListProjects godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Param        status query string false "Filter by status"
// @Success      200  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/projects [get]
func (ctrl *ProjectController) ListProjects(c *fiber.Ctx) error {
	page, limit := api.Pagination(c)

	projects, total, err := ctrl.Service.ListProjects(c.UserContext(), middleware.GetClaims(c), c.Query("status"), page, limit)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, api.Page{Items: projects, Total: total, Page: page, Limit: limit})
}

// GetProject godoc
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {object} Project
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/projects/{id} [get]
func (ctrl *ProjectController) GetProject(c *fiber.Ctx) error {
	p, err := ctrl.Service.GetProject(c.UserContext(), middleware.GetClaims(c), c.Params("id"))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, p)
}

// CreateProject godoc
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        input body ProjectRequest true "Project"
// @Success      201  {object} Project
// @Failure      400  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/projects [post]
func (ctrl *ProjectController) CreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	p, err := ctrl.Service.CreateProject(c.UserContext(), middleware.GetClaims(c), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusCreated, p)
}

// UpdateProject godoc
// @Summary      Replace project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        input body ProjectRequest true "Project"
// @Success      200  {object} Project
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/projects/{id} [put]
func (ctrl *ProjectController) UpdateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	p, err := ctrl.Service.UpdateProject(c.UserContext(), middleware.GetClaims(c), c.Params("id"), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, p)
}

// DeleteProject godoc
// @Summary      Delete project
// @Description  Deletes the project and its tasks
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {object} map[string]interface{}
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/projects/{id} [delete]
func (ctrl *ProjectController) DeleteProject(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteProject(c.UserContext(), middleware.GetClaims(c), c.Params("id")); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"message": "Project deleted"})
}
