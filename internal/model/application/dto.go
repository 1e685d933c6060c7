package application

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
)

// ------------------------------------------------------------

type CreateApplicationPayload struct {
	School         string  `json:"school" validate:"required,min=2,max=255"`
	Program        string  `json:"program" validate:"required,min=2,max=255"`
	EducationLevel string  `json:"education_level" validate:"required,oneof=bac bac+2 bac+3 bac+5 doctorat"`
	Motivation     string  `json:"motivation" validate:"required,min=50,max=10000"`
	CVPath         *string `json:"cv_path" validate:"omitempty,max=500"`
}

func (p *CreateApplicationPayload) Validate() error {
	p.School = validation.SanitizeText(p.School)
	p.Program = validation.SanitizeText(p.Program)
	p.Motivation = validation.SanitizeText(p.Motivation)
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateApplicationPayload edits the caller's application; nil fields are
// kept as they are.
type UpdateApplicationPayload struct {
	model.IDParam
	School         *string `json:"school" validate:"omitempty,min=2,max=255"`
	Program        *string `json:"program" validate:"omitempty,min=2,max=255"`
	EducationLevel *string `json:"education_level" validate:"omitempty,oneof=bac bac+2 bac+3 bac+5 doctorat"`
	Motivation     *string `json:"motivation" validate:"omitempty,min=50,max=10000"`
	CVPath         *string `json:"cv_path" validate:"omitempty,max=500"`
}

func (p *UpdateApplicationPayload) Validate() error {
	p.School = validation.SanitizeOptional(p.School)
	p.Program = validation.SanitizeOptional(p.Program)
	p.Motivation = validation.SanitizeOptional(p.Motivation)
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListApplicationsQuery struct {
	model.Pagination
	Status  string `query:"status" validate:"omitempty,oneof=en_cours examinée acceptée refusée"`
	School  string `query:"school" validate:"omitempty,max=255"`
	Program string `query:"program" validate:"omitempty,max=255"`
}

func (q *ListApplicationsQuery) Validate() error {
	return validation.Struct(q)
}

// ------------------------------------------------------------

type GetApplicationParams struct {
	model.IDParam
}

func (p *GetApplicationParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type UpdateStatusPayload struct {
	model.IDParam
	Status Status `json:"status" validate:"required,oneof=en_cours examinée acceptée refusée"`
}

func (p *UpdateStatusPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type MineResponse struct {
	Applications []Application `json:"applications"`
	Total        int64         `json:"total"`
}

type ListResponse struct {
	Applications []PopulatedApplication `json:"applications"`
	Pagination   model.PaginationMeta   `json:"pagination"`
}
