package system

import (
	"context"
	"time"

	"vfx-dashboard/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db      Pinger
	config  *config.Config
	logger  *zap.Logger
	started time.Time
}

func NewHealthController(db Pinger, cfg *config.Config, logger *zap.Logger) *HealthController {
	return &HealthController{
		db:      db,
		config:  cfg,
		logger:  logger,
		started: time.Now(),
	}
}

// Health godoc
// @Summary      Service health
// @Description  Reports process uptime and database reachability
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, code, database := "ok", fiber.StatusOK, "up"
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check: database unreachable", zap.Error(err))
		status, code, database = "degraded", fiber.StatusServiceUnavailable, "down"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":      status,
		"database":    database,
		"appId":       h.config.AppId,
		"environment": h.config.Environment,
		"uptime":      time.Since(h.started).Round(time.Second).String(),
	})
}
