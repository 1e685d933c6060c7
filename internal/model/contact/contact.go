// Package contact models messages sent through the public contact form.
package contact

import (
	"time"
)

type Status string

const (
	StatusNew      Status = "nouveau"
	StatusOpen     Status = "en_cours"
	StatusHandled  Status = "traité"
	StatusArchived Status = "archivé"
)

// Statuses lists every accepted status, in workflow order.
var Statuses = []string{string(StatusNew), string(StatusOpen), string(StatusHandled), string(StatusArchived)}

type Message struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	School    *string   `json:"school" db:"school"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Stats struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"byStatus"`
	BySubject map[string]int64 `json:"bySubject"`
	Last7Days int64            `json:"last7Days"`
}
