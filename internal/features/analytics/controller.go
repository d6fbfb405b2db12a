package analytics

import (
	"fmt"

	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	Service AnalyticsService
}

func NewAnalyticsController(service AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: service}
}

func respond(c *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return api.Error(c, err)
	}
	return api.Success(c, fiber.StatusOK, data)
}

// Overview godoc
// @Summary      Dashboard summary and department overview
// @Tags         analytics
// @Produce      json
// @Success      200  {object} Overview
// @Security     BearerAuth
// @Router       /api/analytics/overview [get]
func (ctrl *AnalyticsController) Overview(c *fiber.Ctx) error {
	data, err := ctrl.Service.Overview(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// Roles godoc
// @Summary      Role distribution
// @Tags         analytics
// @Produce      json
// @Success      200  {array} userstats.Count
// @Security     BearerAuth
// @Router       /api/analytics/roles [get]
func (ctrl *AnalyticsController) Roles(c *fiber.Ctx) error {
	data, err := ctrl.Service.Roles(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// Experience godoc
// @Summary      Experience level distribution
// @Tags         analytics
// @Produce      json
// @Success      200  {array} userstats.Count
// @Security     BearerAuth
// @Router       /api/analytics/experience [get]
func (ctrl *AnalyticsController) Experience(c *fiber.Ctx) error {
	data, err := ctrl.Service.Experience(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// Skills godoc
// @Summary      Skill distribution by name and level
// @Tags         analytics
// @Produce      json
// @Success      200  {array} userstats.SkillCount
// @Security     BearerAuth
// @Router       /api/analytics/skills [get]
func (ctrl *AnalyticsController) Skills(c *fiber.Ctx) error {
	data, err := ctrl.Service.Skills(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// WorkPreferences godoc
// @Summary      Work preference yes/no counts
// @Tags         analytics
// @Produce      json
// @Success      200  {array} userstats.WorkPreferenceCount
// @Security     BearerAuth
// @Router       /api/analytics/work-preferences [get]
func (ctrl *AnalyticsController) WorkPreferences(c *fiber.Ctx) error {
	data, err := ctrl.Service.WorkPreferences(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// DislikedAreas godoc
// @Summary      Disliked work area distribution
// @Tags         analytics
// @Produce      json
// @Success      200  {array} userstats.Count
// @Security     BearerAuth
// @Router       /api/analytics/disliked-areas [get]
func (ctrl *AnalyticsController) DislikedAreas(c *fiber.Ctx) error {
	data, err := ctrl.Service.DislikedAreas(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// Departments godoc
// @Summary      Department overview
// @Tags         analytics
// @Produce      json
// @Success      200  {object} userstats.DepartmentReport
// @Security     BearerAuth
// @Router       /api/analytics/departments [get]
func (ctrl *AnalyticsController) Departments(c *fiber.Ctx) error {
	data, err := ctrl.Service.Departments(c.UserContext(), middleware.GetClaims(c).Organization)
	return respond(c, data, err)
}

// UsersByRole godoc
// @Summary      Users holding a role
// @Tags         analytics
// @Produce      json
// @Param        role path string true "Role, matched exactly"
// @Success      200  {array} userstats.UserSummary
// @Security     BearerAuth
// @Router       /api/analytics/users-by-role/{role} [get]
func (ctrl *AnalyticsController) UsersByRole(c *fiber.Ctx) error {
	data, err := ctrl.Service.UsersByRole(c.UserContext(), middleware.GetClaims(c).Organization, c.Params("role"))
	return respond(c, data, err)
}

// History godoc
// @Summary      Stored stats snapshots, newest first
// @Tags         analytics
// @Produce      json
// @Param        limit query int false "Max snapshots" default(30)
// @Success      200  {array} StatsSnapshot
// @Security     BearerAuth
// @Router       /api/analytics/history [get]
func (ctrl *AnalyticsController) History(c *fiber.Ctx) error {
	data, err := ctrl.Service.History(c.UserContext(), middleware.GetClaims(c).Organization, int64(c.QueryInt("limit", 30)))
	return respond(c, data, err)
}

// Export godoc
// @Summary      Download all tables as an xlsx workbook
// @Tags         analytics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file} file
// @Security     BearerAuth
// @Router       /api/analytics/export [get]
func (ctrl *AnalyticsController) Export(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.Export(c.UserContext(), middleware.GetClaims(c).Organization)
	if err != nil {
		return api.Error(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
