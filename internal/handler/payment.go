package handler

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/payment"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Create(c echo.Context, p *payment.CreatePaymentPayload) (*payment.CreateResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.payments.Create(c.Request().Context(), a, p)
}

// Fees quotes the processing fee for an amount and method without
// creating anything.
func (h *PaymentHandler) Fees(c echo.Context, q *payment.FeeQuery) (payment.FeeQuote, error) {
	return h.payments.Fees(q), nil
}

func (h *PaymentHandler) Mine(c echo.Context, _ *model.NoPayload) (*payment.MineResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.payments.Mine(c.Request().Context(), a)
}

func (h *PaymentHandler) GetMine(c echo.Context, p *payment.GetPaymentParams) (*payment.Payment, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.payments.Get(c.Request().Context(), a, p.ID)
}

func (h *PaymentHandler) Receipt(c echo.Context, p *payment.GetPaymentParams) (*payment.Receipt, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.payments.Receipt(c.Request().Context(), a, p.ID)
}

func (h *PaymentHandler) ByTransaction(c echo.Context, p *payment.GetByTransactionParams) (*payment.Payment, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.payments.GetByTransaction(c.Request().Context(), a, p.TransactionID)
}

func (h *PaymentHandler) List(c echo.Context, q *payment.ListPaymentsQuery) (*payment.ListResponse, error) {
	return h.payments.List(c.Request().Context(), q)
}

func (h *PaymentHandler) UpdateStatus(c echo.Context, p *payment.UpdateStatusPayload) (*payment.Payment, error) {
	return h.payments.UpdateStatus(c.Request().Context(), p)
}

func (h *PaymentHandler) Stats(c echo.Context, _ *model.NoPayload) (*payment.Stats, error) {
	return h.payments.Stats(c.Request().Context())
}

func (h *PaymentHandler) Monthly(c echo.Context, p *payment.MonthlyParams) (*payment.MonthlyResponse, error) {
	return h.payments.Monthly(c.Request().Context(), p)
}
