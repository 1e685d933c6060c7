// Package document models official document requests (transcripts,
// enrollment certificates, diplomas).
package document

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "en_attente"
	StatusProcessed Status = "traitée"
	StatusAvailable Status = "disponible"
	StatusExpired   Status = "expirée"
)

var Statuses = []string{string(StatusPending), string(StatusProcessed), string(StatusAvailable), string(StatusExpired)}

type Type string

const (
	TypeEnrollmentAttestation Type = "attestation_scolarite"
	TypeTranscript            Type = "releve_notes"
	TypeRegistrationCert      Type = "certificat_inscription"
	TypeDiploma               Type = "diplome"
	TypeOther                 Type = "autre"
)

// Label is the human readable name used in notifications.
func (t Type) Label() string {
	switch t {
	case TypeEnrollmentAttestation:
		return "Attestation de scolarité"
	case TypeTranscript:
		return "Relevé de notes"
	case TypeRegistrationCert:
		return "Certificat d'inscription"
	case TypeDiploma:
		return "Diplôme"
	default:
		return "Document"
	}
}

type Document struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	DocumentType Type       `json:"document_type" db:"document_type"`
	Status       Status     `json:"status" db:"status"`
	FilePath     *string    `json:"file_path" db:"file_path"`
	RequestedAt  time.Time  `json:"requested_at" db:"requested_at"`
	DeliveredAt  *time.Time `json:"delivered_at" db:"delivered_at"`
}

// Downloadable reports whether a file has been attached.
func (d *Document) Downloadable() bool {
	return d.FilePath != nil && *d.FilePath != ""
}

// Completed reports whether the request has been fulfilled.
func (s Status) Completed() bool {
	return s == StatusProcessed || s == StatusAvailable
}

type Stats struct {
	ByType    map[string]int64 `json:"byType"`
	ByStatus  map[string]int64 `json:"byStatus"`
	Pending   int64            `json:"pending"`
	Completed int64            `json:"completed"`
}
