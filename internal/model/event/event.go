// Package event models campus events published by administrators.
package event

import (
	"time"
)

type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	Location    string    `json:"location" db:"location"`
	Category    *string   `json:"category" db:"category"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Stats struct {
	Total      int64            `json:"total"`
	Upcoming   int64            `json:"upcoming"`
	Past       int64            `json:"past"`
	ByCategory map[string]int64 `json:"byCategory"`
	ByMonth    map[string]int64 `json:"byMonth"`
}
