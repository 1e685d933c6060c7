package handler

import (
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/application"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
}

func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

func (h *ApplicationHandler) Create(c echo.Context, p *application.CreateApplicationPayload) (*application.Application, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.applications.Create(c.Request().Context(), a, p)
}

// UploadCV returns the stored CV so the client can send its file_path with
// the application.
func (h *ApplicationHandler) UploadCV(c echo.Context, _ *model.NoPayload) (*upload.File, error) {
	return uploadedFile(c)
}

func (h *ApplicationHandler) Mine(c echo.Context, _ *model.NoPayload) (*application.MineResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.applications.Mine(c.Request().Context(), a)
}

func (h *ApplicationHandler) GetMine(c echo.Context, p *application.GetApplicationParams) (*application.Application, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.applications.Get(c.Request().Context(), a, p.ID)
}

func (h *ApplicationHandler) UpdateMine(c echo.Context, p *application.UpdateApplicationPayload) (*application.Application, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.applications.Update(c.Request().Context(), a, p)
}

func (h *ApplicationHandler) DeleteMine(c echo.Context, p *application.GetApplicationParams) (*model.MessageResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	if err := h.applications.Delete(c.Request().Context(), a, p.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Application deleted", ID: p.ID}, nil
}

func (h *ApplicationHandler) List(c echo.Context, q *application.ListApplicationsQuery) (*application.ListResponse, error) {
	return h.applications.List(c.Request().Context(), q)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context, p *application.UpdateStatusPayload) (*application.Application, error) {
	return h.applications.UpdateStatus(c.Request().Context(), p)
}

func (h *ApplicationHandler) Stats(c echo.Context, _ *model.NoPayload) (*application.Stats, error) {
	return h.applications.Stats(c.Request().Context())
}
