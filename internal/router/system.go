package router

import (
	"github.com/deppfellow/campus-portal/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the index, health, version and metrics
// endpoints.
func registerSystemRoutes(api *echo.Group, h *handler.Handlers) {
	api.GET("", h.Index.Index)

	health := api.Group("/health")
	health.GET("", h.Health.CheckHealth)
	health.GET("/version", h.Health.Version)
	health.GET("/metrics", h.Health.Metrics)
}
