package joboffer

import (
	"strings"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
)

// ------------------------------------------------------------

type CreateOfferPayload struct {
	Type           Type    `json:"type" validate:"required,oneof=emploi stage"`
	Company        string  `json:"company" validate:"required,min=2,max=255"`
	ContactPerson  string  `json:"contact_person" validate:"required,min=2,max=255"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,phone"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	PostalCode     *string `json:"postal_code" validate:"omitempty,max=10"`
	Sector         *string `json:"sector" validate:"omitempty,max=100"`
	Missions       string  `json:"missions" validate:"required,min=10,max=10000"`
	EducationLevel *string `json:"education_level" validate:"omitempty,max=50"`
}

func (p *CreateOfferPayload) Validate() error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Company = validation.SanitizeText(p.Company)
	p.ContactPerson = validation.SanitizeText(p.ContactPerson)
	p.Missions = validation.SanitizeText(p.Missions)
	p.Address = validation.SanitizeOptional(p.Address)
	p.City = validation.SanitizeOptional(p.City)
	p.Sector = validation.SanitizeOptional(p.Sector)
	return validation.Struct(p)
}

// ------------------------------------------------------------

// ListOffersQuery filters the public board. Status defaults to active so
// unreviewed submissions stay hidden.
type ListOffersQuery struct {
	model.Pagination
	Type   string `query:"type" validate:"omitempty,oneof=emploi stage"`
	City   string `query:"city" validate:"omitempty,max=100"`
	Sector string `query:"sector" validate:"omitempty,max=100"`
	Status string `query:"status" validate:"omitempty,oneof=en_attente active expirée supprimée"`
}

func (q *ListOffersQuery) Validate() error {
	if q.Status == "" {
		q.Status = string(StatusActive)
	}
	return validation.Struct(q)
}

// ------------------------------------------------------------

// SearchOffersQuery matches company names when Query is set, otherwise it
// falls back to the structured filters.
type SearchOffersQuery struct {
	Query  string `query:"query" validate:"omitempty,max=100"`
	Type   string `query:"type" validate:"omitempty,oneof=emploi stage"`
	City   string `query:"city" validate:"omitempty,max=100"`
	Sector string `query:"sector" validate:"omitempty,max=100"`
}

func (q *SearchOffersQuery) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	return validation.Struct(q)
}

// ------------------------------------------------------------

type GetOfferParams struct {
	model.IDParam
}

func (p *GetOfferParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type UpdateStatusPayload struct {
	model.IDParam
	Status Status `json:"status" validate:"required,oneof=en_attente active expirée supprimée"`
}

func (p *UpdateStatusPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListResponse struct {
	Offers     []Offer              `json:"offers"`
	Pagination model.PaginationMeta `json:"pagination"`
}

type SearchResponse struct {
	Offers []Offer `json:"offers"`
	Count  int     `json:"count"`
}
