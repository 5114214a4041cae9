package handler

import (
	"context"
	"time"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PingFunc checks one backing service.
type PingFunc func(ctx context.Context) error

// HealthHandler reports the state of the database and the cache.
type HealthHandler struct {
	checks  map[string]PingFunc
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. Nil checks are skipped.
func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	h := &HealthHandler{checks: make(map[string]PingFunc), timeout: 2 * time.Second}
	for name, check := range checks {
		if check != nil {
			h.checks[name] = check
		}
	}
	return h
}

// Health godoc
// @Summary Health check
// @Description Pings the database and, when configured, the cache
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Services: make(map[string]string, len(h.checks))}
	status := fiber.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("service", name), zap.Error(err))
			resp.Services[name] = "down"
			resp.Status = "degraded"
			status = fiber.StatusServiceUnavailable
			continue
		}
		resp.Services[name] = "up"
	}

	return c.Status(status).JSON(resp)
}
