package contact

import (
	"strings"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
)

// ------------------------------------------------------------

type CreateMessagePayload struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=100,personname"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=100,personname"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	School    *string `json:"school" validate:"omitempty,max=255"`
	Subject   string  `json:"subject" validate:"required,min=3,max=255"`
	Message   string  `json:"message" validate:"required,min=10,max=5000"`
}

// Validate strips markup before checking lengths, so a message made only
// of tags is rejected as too short.
func (p *CreateMessagePayload) Validate() error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Subject = validation.SanitizeText(p.Subject)
	p.Message = validation.SanitizeText(p.Message)
	p.School = validation.SanitizeOptional(p.School)
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListMessagesQuery struct {
	model.Pagination
	Status string `query:"status" validate:"omitempty,oneof=nouveau en_cours traité archivé"`
}

func (q *ListMessagesQuery) Validate() error {
	return validation.Struct(q)
}

// ------------------------------------------------------------

type GetMessageParams struct {
	model.IDParam
}

func (p *GetMessageParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type UpdateStatusPayload struct {
	model.IDParam
	Status Status `json:"status" validate:"required,oneof=nouveau en_cours traité archivé"`
}

func (p *UpdateStatusPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListResponse struct {
	Messages   []Message            `json:"messages"`
	Pagination model.PaginationMeta `json:"pagination"`
}
