package audit

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary      List audit logs
// @Description  Mutations recorded in the caller's organization, newest first
// @Tags         audit
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(20)
// @Param        module query string false "Module (projects, tasks, resources, users)"
// @Param        recordId query string false "Record ID"
// @Success      200  {object} map[string]interface{}
// @Failure      403  {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /api/audit-logs [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	page, limit := api.Pagination(c)
	filters := map[string]string{
		"module":   c.Query("module"),
		"recordId": c.Query("recordId"),
		"actorId":  c.Query("actorId"),
	}

	claims := middleware.GetClaims(c)
	logs, total, err := ctrl.Service.ListLogs(c.UserContext(), claims.Organization, filters, page, limit)
	if err != nil {
		return api.Error(c, err)
	}

	return api.Success(c, fiber.StatusOK, api.Page{Items: logs, Total: total, Page: page, Limit: limit})
}
