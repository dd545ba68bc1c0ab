package handlers

import (
	"context"

	"olympia-api/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthCheckFunc probes one dependency
type HealthCheckFunc func(ctx context.Context) error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg    *config.Config
	checks map[string]HealthCheckFunc
}

// NewHealthHandler creates a new health handler. checks maps a dependency
// name to its probe.
func NewHealthHandler(cfg *config.Config, checks map[string]HealthCheckFunc) *HealthHandler {
	return &HealthHandler{cfg: cfg, checks: checks}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Bible Olympiad API is running",
		"mode":    h.cfg.AppMode,
		"store":   h.cfg.StoreDriver,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, store and cache health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	checks := fiber.Map{"api": "healthy"}
	status := fiber.StatusOK

	for name, probe := range h.checks {
		if err := probe(c.UserContext()); err != nil {
			checks[name] = "unhealthy"
			status = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "healthy"
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Bible Olympiad API v1",
		"version": "1.0.0",
	})
}
