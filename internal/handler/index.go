package handler

import (
	"net/http"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/labstack/echo/v4"
)

// IndexHandler lists the API resources at GET /api.
type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

type IndexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

var apiEndpoints = map[string]string{
	"auth":         "/api/auth",
	"users":        "/api/users",
	"contact":      "/api/contact",
	"jobs":         "/api/jobs",
	"applications": "/api/applications",
	"documents":    "/api/documents",
	"payments":     "/api/payments",
	"events":       "/api/events",
	"health":       "/api/health",
}

func (h *IndexHandler) Index(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.JSON(http.StatusOK, IndexResponse{
		Name:      config.InstitutionName + " API",
		Version:   config.Version,
		Endpoints: apiEndpoints,
	})
}
