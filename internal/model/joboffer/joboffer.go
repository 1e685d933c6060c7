// Package joboffer models job and internship postings submitted by companies.
package joboffer

import (
	"time"
)

type Type string

const (
	TypeJob        Type = "emploi"
	TypeInternship Type = "stage"
)

type Status string

const (
	StatusPending Status = "en_attente"
	StatusActive  Status = "active"
	StatusExpired Status = "expirée"
	StatusRemoved Status = "supprimée"
)

var Statuses = []string{string(StatusPending), string(StatusActive), string(StatusExpired), string(StatusRemoved)}

type Offer struct {
	ID             int64     `json:"id" db:"id"`
	Type           Type      `json:"type" db:"type"`
	Company        string    `json:"company" db:"company"`
	ContactPerson  string    `json:"contact_person" db:"contact_person"`
	Email          string    `json:"email" db:"email"`
	Phone          *string   `json:"phone" db:"phone"`
	Address        *string   `json:"address" db:"address"`
	City           *string   `json:"city" db:"city"`
	PostalCode     *string   `json:"postal_code" db:"postal_code"`
	Sector         *string   `json:"sector" db:"sector"`
	Missions       string    `json:"missions" db:"missions"`
	EducationLevel *string   `json:"education_level" db:"education_level"`
	FilePath       *string   `json:"file_path" db:"file_path"`
	Status         Status    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type Stats struct {
	Total    int64            `json:"total"`
	ByType   map[string]int64 `json:"byType"`
	ByCity   map[string]int64 `json:"byCity"`
	ByStatus map[string]int64 `json:"byStatus"`
	Recent   int64            `json:"recent"`
}
