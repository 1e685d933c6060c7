package service

import (
	"context"
	"time"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/event"
	"github.com/rs/zerolog"
)

type eventStore interface {
	Create(ctx context.Context, p *event.CreateEventPayload) (*event.Event, error)
	GetByID(ctx context.Context, id int64) (*event.Event, error)
	List(ctx context.Context, q *event.ListEventsQuery) ([]event.Event, int64, error)
	Upcoming(ctx context.Context, days int) ([]event.Event, error)
	Past(ctx context.Context, limit int) ([]event.Event, error)
	Search(ctx context.Context, query string) ([]event.Event, error)
	Between(ctx context.Context, start, end time.Time) ([]event.Event, error)
	Update(ctx context.Context, p *event.UpdateEventPayload) (*event.Event, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*event.Stats, error)
}

type EventService struct {
	events eventStore
	logger *zerolog.Logger
}

func NewEventService(events eventStore, logger *zerolog.Logger) *EventService {
	return &EventService{events: events, logger: logger}
}

func collection(events []event.Event, err error) (*event.CollectionResponse, error) {
	if err != nil {
		return nil, err
	}
	return &event.CollectionResponse{Events: events, Count: len(events)}, nil
}

func (s *EventService) List(ctx context.Context, q *event.ListEventsQuery) (*event.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	events, total, err := s.events.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &event.ListResponse{Events: events, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

func (s *EventService) Upcoming(ctx context.Context, q *event.UpcomingQuery) (*event.CollectionResponse, error) {
	return collection(s.events.Upcoming(ctx, q.Days))
}

func (s *EventService) Past(ctx context.Context, q *event.PastQuery) (*event.CollectionResponse, error) {
	return collection(s.events.Past(ctx, q.Limit))
}

func (s *EventService) Search(ctx context.Context, q *event.SearchQuery) (*event.CollectionResponse, error) {
	return collection(s.events.Search(ctx, q.Query))
}

func (s *EventService) Between(ctx context.Context, q *event.DateRangeQuery) (*event.CollectionResponse, error) {
	return collection(s.events.Between(ctx, q.StartDate.Time, q.EndDate.Time))
}

func (s *EventService) Get(ctx context.Context, id int64) (*event.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, p *event.CreateEventPayload) (*event.Event, error) {
	return s.events.Create(ctx, p)
}

func (s *EventService) Update(ctx context.Context, p *event.UpdateEventPayload) (*event.Event, error) {
	return s.events.Update(ctx, p)
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

func (s *EventService) Stats(ctx context.Context) (*event.Stats, error) {
	return s.events.Stats(ctx)
}
