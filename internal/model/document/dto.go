package document

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
)

// ------------------------------------------------------------

type RequestPayload struct {
	DocumentType Type `json:"document_type" validate:"required,oneof=attestation_scolarite releve_notes certificat_inscription diplome autre"`
}

func (p *RequestPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type GetDocumentParams struct {
	model.IDParam
}

func (p *GetDocumentParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListDocumentsQuery struct {
	model.Pagination
	Status       string `query:"status" validate:"omitempty,oneof=en_attente traitée disponible expirée"`
	DocumentType string `query:"document_type" validate:"omitempty,oneof=attestation_scolarite releve_notes certificat_inscription diplome autre"`
}

func (q *ListDocumentsQuery) Validate() error {
	return validation.Struct(q)
}

// ------------------------------------------------------------

// UpdateStatusPayload moves a request through its lifecycle. FilePath
// attaches an already stored file.
type UpdateStatusPayload struct {
	model.IDParam
	Status   Status  `json:"status" validate:"required,oneof=en_attente traitée disponible expirée"`
	FilePath *string `json:"file_path" validate:"omitempty,max=500"`
}

func (p *UpdateStatusPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type MineResponse struct {
	Documents []Document `json:"documents"`
	Total     int64      `json:"total"`
}

type ListResponse struct {
	Documents  []Document           `json:"documents"`
	Pagination model.PaginationMeta `json:"pagination"`
}
