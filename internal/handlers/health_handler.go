package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/matchday-hq/matchday/internal/config"
	"github.com/matchday-hq/matchday/internal/database"
	"github.com/matchday-hq/matchday/internal/dto"
)

type HealthHandler struct {
	cfg  *config.Config
	ping func() error
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg, ping: database.Ping}
}

// Check always answers 200; a failing DB probe degrades the status
// instead so load balancers keep the process routable while it recovers.
// The db field is the literal "ok" or "error" — the probe failure itself
// goes to the log, not to the unauthenticated response.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	start := time.Now()
	status, dbStatus := "ok", "ok"
	if err := h.ping(); err != nil {
		slog.Error("health probe failed", "error", err)
		status = "degraded"
		dbStatus = "error"
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		DB:        dbStatus,
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000.0,
		App:       h.cfg.AppName,
	})
}
