package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/go-todos/internal/middleware"
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// HealthHandler serves /status, used by load balancers and uptime monitors
// to verify the service is alive and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// CheckHealth returns system health status and dependency checks.
//
// The database is required: a failed ping answers 503. Redis only backs
// the optional event worker, so a failed ping marks the service "degraded"
// and still answers 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]checkResult{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}
	status := http.StatusOK

	if cfg.HealthCheckEnabled("database") {
		result := h.runCheck(c.Request().Context(), &logger, "database", func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNotConfigured
			}
			return h.server.DB.Pool.Ping(ctx)
		})
		checks["database"] = result
		if result.Status != "healthy" {
			response["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	if h.server.Redis != nil && cfg.HealthCheckEnabled("redis") {
		result := h.runCheck(c.Request().Context(), &logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		checks["redis"] = result
		if result.Status != "healthy" && status == http.StatusOK {
			response["status"] = "degraded"
		}
	}

	if h.server.Job != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.HealthChecks.Timeout)
		counts, err := h.server.Job.EventCounts(ctx)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read todo event counters")
		} else {
			response["events"] = counts
		}
	}

	event := logger.Info()
	if status != http.StatusOK {
		event = logger.Warn()
		h.recordHealthError("overall", map[string]interface{}{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
	}
	event.
		Dur("total_duration", time.Since(start)).
		Interface("status", response["status"]).
		Msg("health check finished")

	return c.JSON(status, response)
}

var errNotConfigured = errors.New("not configured")

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger *zerolog.Logger,
	name string,
	check func(ctx context.Context) error,
) checkResult {
	ctx, cancel := context.WithTimeout(parent, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	checkStart := time.Now()
	err := check(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msgf("%s health check failed", name)

		h.recordHealthError(name, map[string]interface{}{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	logger.Debug().
		Dur("response_time", elapsed).
		Msgf("%s health check passed", name)

	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}

// recordHealthError records a HealthCheckError custom event in New Relic.
func (h *HealthHandler) recordHealthError(checkType string, attrs map[string]interface{}) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	attrs["error_type"] = checkType + "_unhealthy"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
