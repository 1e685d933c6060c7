// Package application models program applications submitted by students.
package application

import (
	"time"
)

type Status string

const (
	StatusInProgress Status = "en_cours"
	StatusReviewed   Status = "examinée"
	StatusAccepted   Status = "acceptée"
	StatusRejected   Status = "refusée"
)

var Statuses = []string{string(StatusInProgress), string(StatusReviewed), string(StatusAccepted), string(StatusRejected)}

// EducationLevels accepted on an application.
var EducationLevels = []string{"bac", "bac+2", "bac+3", "bac+5", "doctorat"}

type Application struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	School         string    `json:"school" db:"school"`
	Program        string    `json:"program" db:"program"`
	EducationLevel string    `json:"education_level" db:"education_level"`
	Motivation     string    `json:"motivation" db:"motivation"`
	CVPath         *string   `json:"cv_path" db:"cv_path"`
	Status         Status    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Label is the wording used in status emails.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "en cours de traitement"
	case StatusReviewed:
		return "examinée"
	case StatusAccepted:
		return "acceptée"
	case StatusRejected:
		return "refusée"
	default:
		return string(s)
	}
}

// Editable reports whether the applicant may still change the application.
func (a *Application) Editable() bool {
	return a.Status == StatusInProgress
}

// PopulatedApplication carries the applicant's identity for admin views.
type PopulatedApplication struct {
	Application
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
}

type Stats struct {
	Total      int64            `json:"total"`
	Pending    int64            `json:"pending"`
	ByStatus   map[string]int64 `json:"byStatus"`
	BySchool   map[string]int64 `json:"bySchool"`
	ByProgram  map[string]int64 `json:"byProgram"`
	Last30Days int64            `json:"last30Days"`
}
