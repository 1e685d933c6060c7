package handler

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/event"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) List(c echo.Context, q *event.ListEventsQuery) (*event.ListResponse, error) {
	return h.events.List(c.Request().Context(), q)
}

func (h *EventHandler) Upcoming(c echo.Context, q *event.UpcomingQuery) (*event.CollectionResponse, error) {
	return h.events.Upcoming(c.Request().Context(), q)
}

func (h *EventHandler) Past(c echo.Context, q *event.PastQuery) (*event.CollectionResponse, error) {
	return h.events.Past(c.Request().Context(), q)
}

func (h *EventHandler) Search(c echo.Context, q *event.SearchQuery) (*event.CollectionResponse, error) {
	return h.events.Search(c.Request().Context(), q)
}

func (h *EventHandler) DateRange(c echo.Context, q *event.DateRangeQuery) (*event.CollectionResponse, error) {
	return h.events.Between(c.Request().Context(), q)
}

func (h *EventHandler) Get(c echo.Context, p *event.GetEventParams) (*event.Event, error) {
	return h.events.Get(c.Request().Context(), p.ID)
}

func (h *EventHandler) Create(c echo.Context, p *event.CreateEventPayload) (*event.Event, error) {
	return h.events.Create(c.Request().Context(), p)
}

func (h *EventHandler) Update(c echo.Context, p *event.UpdateEventPayload) (*event.Event, error) {
	return h.events.Update(c.Request().Context(), p)
}

func (h *EventHandler) Delete(c echo.Context, p *event.GetEventParams) (*model.MessageResponse, error) {
	if err := h.events.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Event deleted", ID: p.ID}, nil
}

func (h *EventHandler) Stats(c echo.Context, _ *model.NoPayload) (*event.Stats, error) {
	return h.events.Stats(c.Request().Context())
}
