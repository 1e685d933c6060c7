package handler

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/contact"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	contact *service.ContactService
}

func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Send(c echo.Context, p *contact.CreateMessagePayload) (*contact.Message, error) {
	return h.contact.Send(c.Request().Context(), p)
}

func (h *ContactHandler) List(c echo.Context, q *contact.ListMessagesQuery) (*contact.ListResponse, error) {
	return h.contact.List(c.Request().Context(), q)
}

func (h *ContactHandler) Stats(c echo.Context, _ *model.NoPayload) (*contact.Stats, error) {
	return h.contact.Stats(c.Request().Context())
}

func (h *ContactHandler) Get(c echo.Context, p *contact.GetMessageParams) (*contact.Message, error) {
	return h.contact.Get(c.Request().Context(), p.ID)
}

func (h *ContactHandler) UpdateStatus(c echo.Context, p *contact.UpdateStatusPayload) (*contact.Message, error) {
	return h.contact.UpdateStatus(c.Request().Context(), p)
}

func (h *ContactHandler) Delete(c echo.Context, p *contact.GetMessageParams) (*model.MessageResponse, error) {
	if err := h.contact.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Message deleted", ID: p.ID}, nil
}
