package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/deppfellow/campus-portal/internal/lib/metrics"
	"github.com/deppfellow/campus-portal/internal/middleware"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

const healthCheckTimeout = 5 * time.Second

type pingFunc func(ctx context.Context) error

// HealthHandler serves the health, version and metrics endpoints.
type HealthHandler struct {
	nrApp   *newrelic.Application
	env     string
	checks  []dependencyCheck
	metrics http.Handler
}

// dependencyCheck is a named ping. Only required checks turn the endpoint
// unhealthy.
type dependencyCheck struct {
	name     string
	required bool
	ping     pingFunc
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		nrApp:   s.LoggerService.GetApplication(),
		env:     s.Config.Primary.Env,
		metrics: metrics.Handler(),
	}

	if s.DB != nil {
		h.checks = append(h.checks, dependencyCheck{name: "database", required: true, ping: s.DB.Pool.Ping})
	}
	if s.Redis != nil {
		h.checks = append(h.checks, dependencyCheck{name: "redis", ping: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}})
	}

	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings every dependency. Redis being down degrades the rate
// limiter and email jobs but does not make the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	healthy := true
	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()
		elapsed := time.Since(checkStart)

		if err != nil {
			response.Checks[check.name] = checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
			if check.required {
				healthy = false
			}

			logger.Error().Err(err).Str("check", check.name).Dur("response_time", elapsed).Msg("health check failed")

			if h.nrApp != nil {
				h.nrApp.RecordCustomEvent("HealthCheckError", map[string]interface{}{
					"check_type":       check.name,
					"operation":        "health_check",
					"response_time_ms": elapsed.Milliseconds(),
					"error_message":    err.Error(),
				})
			}
			continue
		}

		response.Checks[check.name] = checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	if !healthy {
		response.Status = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

type VersionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Environment string `json:"environment"`
}

func (h *HealthHandler) Version(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{
		Name:        config.ServiceName,
		Version:     config.Version,
		Commit:      config.GitCommit,
		Environment: h.env,
	})
}

// Metrics serves the Prometheus exposition of the portal registry.
func (h *HealthHandler) Metrics(c echo.Context) error {
	h.metrics.ServeHTTP(c.Response(), c.Request())
	return nil
}
