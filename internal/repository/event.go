package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model/event"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, description, event_date, location, category, image_url, created_at`

type EventRepository struct {
	db *database.Database
}

func NewEventRepository(db *database.Database) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, p *event.CreateEventPayload) (*event.Event, error) {
	stmt := `
		INSERT INTO events (title, description, event_date, location, category, image_url)
		VALUES (@title, @description, @event_date, @location, @category, @image_url)
		RETURNING ` + eventColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"title":       p.Title,
		"description": p.Description,
		"event_date":  p.EventDate.Time,
		"location":    p.Location,
		"category":    p.Category,
		"image_url":   p.ImageURL,
	})
	e, err := collectOne[event.Event](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event title=%s: %w", p.Title, err)
	}

	return e, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE id = @id`, pgx.NamedArgs{"id": id})
	e, err := collectOne[event.Event](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get event id=%d from table:events: %w", id, err)
	}

	return e, nil
}

// List orders events chronologically. Upcoming listings start at the
// beginning of the current day.
func (r *EventRepository) List(ctx context.Context, q *event.ListEventsQuery) ([]event.Event, int64, error) {
	f := newFilter().eq("category", "category", q.Category)
	if q.OnlyUpcoming() {
		f.conds = append(f.conds, "event_date >= CURRENT_DATE")
	}
	page := q.Pagination.Normalized()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events`+f.where()+` ORDER BY event_date ASC LIMIT @limit OFFSET @offset`,
		f.paged(page))
	events, err := collect[event.Event](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM events`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	return events, total, nil
}

// Upcoming returns events from today through the next days days.
func (r *EventRepository) Upcoming(ctx context.Context, days int) ([]event.Event, error) {
	events, err := collect[event.Event](r.db.Pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE event_date >= CURRENT_DATE AND event_date <= CURRENT_DATE + make_interval(days => @days)
		ORDER BY event_date ASC`,
		pgx.NamedArgs{"days": days}))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	return events, nil
}

// Past returns the most recent events that took place before today.
func (r *EventRepository) Past(ctx context.Context, limit int) ([]event.Event, error) {
	events, err := collect[event.Event](r.db.Pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_date < CURRENT_DATE ORDER BY event_date DESC LIMIT @limit`,
		pgx.NamedArgs{"limit": limit}))
	if err != nil {
		return nil, fmt.Errorf("failed to list past events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) Search(ctx context.Context, query string) ([]event.Event, error) {
	events, err := collect[event.Event](r.db.Pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE title ILIKE @pattern OR description ILIKE @pattern OR location ILIKE @pattern
		ORDER BY event_date ASC`,
		pgx.NamedArgs{"pattern": containsPattern(query)}))
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return events, nil
}

// Between returns events whose date falls in [start, end].
func (r *EventRepository) Between(ctx context.Context, start, end time.Time) ([]event.Event, error) {
	events, err := collect[event.Event](r.db.Pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_date BETWEEN @start AND @end ORDER BY event_date ASC`,
		pgx.NamedArgs{"start": start, "end": end}))
	if err != nil {
		return nil, fmt.Errorf("failed to list events in range: %w", err)
	}

	return events, nil
}

// Update applies the non-nil fields of p.
func (r *EventRepository) Update(ctx context.Context, p *event.UpdateEventPayload) (*event.Event, error) {
	var eventDate *time.Time
	if p.EventDate != nil && !p.EventDate.IsZero() {
		eventDate = &p.EventDate.Time
	}

	stmt := `
		UPDATE events SET
			title       = COALESCE(@title, title),
			description = COALESCE(@description, description),
			event_date  = COALESCE(@event_date, event_date),
			location    = COALESCE(@location, location),
			category    = COALESCE(@category, category),
			image_url   = COALESCE(@image_url, image_url)
		WHERE id = @id
		RETURNING ` + eventColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"event_date":  eventDate,
		"location":    p.Location,
		"category":    p.Category,
		"image_url":   p.ImageURL,
	})
	e, err := collectOne[event.Event](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update event id=%d from table:events: %w", p.ID, err)
	}

	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM events WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete event id=%d from table:events: %w", id, pgx.ErrNoRows)
	}

	return nil
}

func (r *EventRepository) Stats(ctx context.Context) (*event.Stats, error) {
	var stats event.Stats

	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE event_date >= CURRENT_DATE),
			COUNT(*) FILTER (WHERE event_date < CURRENT_DATE)
		FROM events`).Scan(&stats.Total, &stats.Upcoming, &stats.Past)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	if stats.ByCategory, err = countBy(ctx, r.db.Pool,
		`SELECT COALESCE(category, 'autre') AS key, COUNT(*) AS count FROM events GROUP BY 1`); err != nil {
		return nil, fmt.Errorf("failed to count events by category: %w", err)
	}
	if stats.ByMonth, err = countBy(ctx, r.db.Pool,
		`SELECT to_char(event_date, 'YYYY-MM') AS key, COUNT(*) AS count FROM events GROUP BY 1`); err != nil {
		return nil, fmt.Errorf("failed to count events by month: %w", err)
	}

	return &stats, nil
}
