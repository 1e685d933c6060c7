package payment

import (
	"fmt"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
	"github.com/shopspring/decimal"
)

var maxAmount = decimal.RequireFromString("99999999.99")

func validateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return validation.CustomValidationErrors{{Field: "amount", Message: "must be greater than 0"}}
	case !amount.Equal(amount.Round(2)):
		return validation.CustomValidationErrors{{Field: "amount", Message: "must have at most 2 decimal places"}}
	case amount.GreaterThan(maxAmount):
		return validation.CustomValidationErrors{{Field: "amount", Message: fmt.Sprintf("must not exceed %s", maxAmount)}}
	}
	return nil
}

// ------------------------------------------------------------

type CreatePaymentPayload struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   Type            `json:"payment_type" validate:"required,oneof=frais_scolarite frais_dossier frais_diplome frais_bibliotheque autres"`
	PaymentMethod Method          `json:"payment_method" validate:"omitempty,oneof=card mobile bank_transfer cash"`
}

func (p *CreatePaymentPayload) Validate() error {
	if p.PaymentMethod == "" {
		p.PaymentMethod = MethodCard
	}
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateAmount(p.Amount)
}

// ------------------------------------------------------------

type FeeQuery struct {
	Amount string `query:"amount" validate:"required"`
	Method Method `query:"method" validate:"omitempty,oneof=card mobile bank_transfer cash"`

	parsed decimal.Decimal
}

func (q *FeeQuery) Validate() error {
	if err := validation.Struct(q); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(q.Amount)
	if err != nil {
		return validation.CustomValidationErrors{{Field: "amount", Message: "must be a number"}}
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	q.parsed = amount
	return nil
}

// ParsedAmount is the validated amount.
func (q *FeeQuery) ParsedAmount() decimal.Decimal {
	return q.parsed
}

// ------------------------------------------------------------

type GetPaymentParams struct {
	model.IDParam
}

func (p *GetPaymentParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type GetByTransactionParams struct {
	TransactionID string `param:"transactionId" validate:"required,max=100"`
}

func (p *GetByTransactionParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListPaymentsQuery struct {
	model.Pagination
	Status      string `query:"status" validate:"omitempty,oneof=en_attente complete échoué remboursé"`
	PaymentType string `query:"payment_type" validate:"omitempty,oneof=frais_scolarite frais_dossier frais_diplome frais_bibliotheque autres"`
}

func (q *ListPaymentsQuery) Validate() error {
	return validation.Struct(q)
}

// ------------------------------------------------------------

type UpdateStatusPayload struct {
	model.IDParam
	Status Status `json:"status" validate:"required,oneof=en_attente complete échoué remboursé"`
}

func (p *UpdateStatusPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type MonthlyParams struct {
	Year  int `param:"year" validate:"required,min=2000,max=2100"`
	Month int `param:"month" validate:"required,min=1,max=12"`
}

func (p *MonthlyParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type CreateResponse struct {
	Payment *Payment `json:"payment"`
	Receipt Receipt  `json:"receipt"`
}

type Summary struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

type MineResponse struct {
	Payments []Payment `json:"payments"`
	Summary  Summary   `json:"summary"`
}

type ListResponse struct {
	Payments   []Payment            `json:"payments"`
	Pagination model.PaginationMeta `json:"pagination"`
}

type MonthlyResponse struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []DailyTotal `json:"days"`
}
