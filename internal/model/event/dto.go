package event

import (
	"strings"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
)

const (
	DefaultUpcomingDays = 30
	DefaultPastLimit    = 50
)

// ------------------------------------------------------------

type CreateEventPayload struct {
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	EventDate   model.Date `json:"event_date"`
	Location    string     `json:"location" validate:"required,min=3,max=255"`
	Category    *string    `json:"category" validate:"omitempty,max=100"`
	ImageURL    *string    `json:"image_url" validate:"omitempty,url,max=500"`
}

func (p *CreateEventPayload) Validate() error {
	p.Title = validation.SanitizeText(p.Title)
	p.Location = validation.SanitizeText(p.Location)
	p.Description = validation.SanitizeOptional(p.Description)
	p.Category = validation.SanitizeOptional(p.Category)

	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.EventDate.IsZero() {
		return validation.CustomValidationErrors{{Field: "event_date", Message: "is required"}}
	}
	return nil
}

// ------------------------------------------------------------

// UpdateEventPayload edits an event; nil fields are kept.
type UpdateEventPayload struct {
	model.IDParam
	Title       *string     `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string     `json:"description" validate:"omitempty,max=10000"`
	EventDate   *model.Date `json:"event_date"`
	Location    *string     `json:"location" validate:"omitempty,min=3,max=255"`
	Category    *string     `json:"category" validate:"omitempty,max=100"`
	ImageURL    *string     `json:"image_url" validate:"omitempty,url,max=500"`
}

func (p *UpdateEventPayload) Validate() error {
	p.Title = validation.SanitizeOptional(p.Title)
	p.Location = validation.SanitizeOptional(p.Location)
	p.Description = validation.SanitizeOptional(p.Description)
	p.Category = validation.SanitizeOptional(p.Category)
	return validation.Struct(p)
}

// ------------------------------------------------------------

// ListEventsQuery lists events by date. Upcoming defaults to true, which
// hides events that already took place.
type ListEventsQuery struct {
	model.Pagination
	Category string `query:"category" validate:"omitempty,max=100"`
	Upcoming string `query:"upcoming" validate:"omitempty,oneof=true false"`
}

func (q *ListEventsQuery) Validate() error {
	return validation.Struct(q)
}

// OnlyUpcoming reports whether past events are filtered out.
func (q *ListEventsQuery) OnlyUpcoming() bool {
	return q.Upcoming != "false"
}

// ------------------------------------------------------------

type UpcomingQuery struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"`
}

func (q *UpcomingQuery) Validate() error {
	if q.Days == 0 {
		q.Days = DefaultUpcomingDays
	}
	return validation.Struct(q)
}

// ------------------------------------------------------------

type PastQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=1000"`
}

func (q *PastQuery) Validate() error {
	if q.Limit == 0 {
		q.Limit = DefaultPastLimit
	}
	return validation.Struct(q)
}

// ------------------------------------------------------------

type SearchQuery struct {
	Query string `query:"query" validate:"max=100"`
}

func (q *SearchQuery) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return errs.NewBadRequestError("search query is required", true, nil, nil, nil)
	}
	return validation.Struct(q)
}

// ------------------------------------------------------------

type DateRangeQuery struct {
	StartDate model.Date `query:"start_date"`
	EndDate   model.Date `query:"end_date"`
}

func (q *DateRangeQuery) Validate() error {
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return errs.NewBadRequestError("start_date and end_date are required", true, nil, nil, nil)
	}
	if q.StartDate.After(q.EndDate.Time) {
		return errs.NewBadRequestError("start_date must be before end_date", true, nil, nil, nil)
	}
	return nil
}

// ------------------------------------------------------------

type GetEventParams struct {
	model.IDParam
}

func (p *GetEventParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListResponse struct {
	Events     []Event              `json:"events"`
	Pagination model.PaginationMeta `json:"pagination"`
}

type CollectionResponse struct {
	Events []Event `json:"events"`
	Count  int     `json:"count"`
}
