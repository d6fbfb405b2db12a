package resource

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ResourceController struct {
	Service ResourceService
}

func NewResourceController(service ResourceService) *ResourceController {
	return &ResourceController{Service: service}
}

// ListResources godoc
// @Summary      List studio resources
// @Tags         resources
// @Produce      json
// @Param        type query string false "Filter by type"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Success      200  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/resources [get]
func (ctrl *ResourceController) ListResources(c *fiber.Ctx) error {
	page, limit := api.Pagination(c)

	resources, total, err := ctrl.Service.ListResources(c.UserContext(), middleware.GetClaims(c), c.Query("type"), page, limit)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, api.Page{Items: resources, Total: total, Page: page, Limit: limit})
}

// GetResource godoc
// @Summary      Get resource
// @Tags         resources
// @Produce      json
// @Param        id path string true "Resource ID"
// @Success      200  {object} Resource
// @Failure      404  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/resources/{id} [get]
func (ctrl *ResourceController) GetResource(c *fiber.Ctx) error {
	r, err := ctrl.Service.GetResource(c.UserContext(), middleware.GetClaims(c), c.Params("id"))
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, r)
}

// CreateResource godoc
// @Summary      Create resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        input body ResourceRequest true "Resource"
// @Success      201  {object} Resource
// @Security     BearerAuth
// @Router       /api/resources [post]
func (ctrl *ResourceController) CreateResource(c *fiber.Ctx) error {
	var req ResourceRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	r, err := ctrl.Service.CreateResource(c.UserContext(), middleware.GetClaims(c), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusCreated, r)
}

// UpdateResource godoc
// @Summary      Replace resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        id path string true "Resource ID"
// @Param        input body ResourceRequest true "Resource"
// @Success      200  {object} Resource
// @Security     BearerAuth
// @Router       /api/resources/{id} [put]
func (ctrl *ResourceController) UpdateResource(c *fiber.Ctx) error {
	var req ResourceRequest
	if err := api.Bind(c, &req); err != nil {
		return err
	}

	r, err := ctrl.Service.UpdateResource(c.UserContext(), middleware.GetClaims(c), c.Params("id"), &req)
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, r)
}

// DeleteResource godoc
// @Summary      Delete resource
// @Tags         resources
// @Param        id path string true "Resource ID"
// @Success      200  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/resources/{id} [delete]
func (ctrl *ResourceController) DeleteResource(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteResource(c.UserContext(), middleware.GetClaims(c), c.Params("id")); err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, fiber.Map{"message": "Resource deleted"})
}
