package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/payment"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type paymentStore interface {
	Create(ctx context.Context, p *payment.Payment) (*payment.Payment, error)
	GetByID(ctx context.Context, id int64) (*payment.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]payment.Payment, error)
	SumCompletedByUser(ctx context.Context, userID int64) (decimal.Decimal, error)
	ListAll(ctx context.Context, q *payment.ListPaymentsQuery) ([]payment.Payment, int64, error)
	UpdateStatus(ctx context.Context, id int64, status payment.Status) (*payment.Payment, error)
	Stats(ctx context.Context, now time.Time) (*payment.Stats, error)
	DailyTotals(ctx context.Context, year, month int) ([]payment.DailyTotal, error)
}

type PaymentService struct {
	payments    paymentStore
	users       userLookup
	mailer      Mailer
	institution payment.Institution
	logger      *zerolog.Logger
	now         func() time.Time
}

func NewPaymentService(payments paymentStore, users userLookup, mailer Mailer, institution payment.Institution, logger *zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments:    payments,
		users:       users,
		mailer:      mailer,
		institution: institution,
		logger:      logger,
		now:         time.Now,
	}
}

// Create records a payment as completed and returns it with its receipt.
func (s *PaymentService) Create(ctx context.Context, actor model.Actor, p *payment.CreatePaymentPayload) (*payment.CreateResponse, error) {
	now := s.now()

	txn, err := payment.NewTransactionID(now)
	if err != nil {
		return nil, err
	}

	method := p.PaymentMethod
	created, err := s.payments.Create(ctx, &payment.Payment{
		UserID:        actor.UserID,
		Amount:        p.Amount,
		PaymentType:   p.PaymentType,
		PaymentMethod: &method,
		TransactionID: &txn,
		Status:        payment.StatusComplete,
	})
	if err != nil {
		return nil, err
	}

	student := payment.ReceiptStudent{ID: actor.UserID, Email: actor.Email}
	firstName := ""
	if u, err := s.users.GetByID(ctx, actor.UserID); err == nil {
		student.Name = u.FullName()
		student.Email = u.Email
		firstName = u.FirstName
	} else {
		s.logger.Warn().Err(err).Int64("user_id", actor.UserID).Msg("payer lookup failed")
	}

	receipt := payment.BuildReceipt(created, student, s.institution, now)
	amount := created.Amount.StringFixed(2)

	s.mailer.PaymentReceipt(ctx, student.Email, email.PaymentReceiptData{
		FirstName:     firstName,
		Amount:        amount,
		Currency:      payment.DefaultCurrency,
		PaymentType:   created.PaymentType.Info().Name,
		TransactionID: txn,
		Date:          receipt.DateFormatted,
	})
	s.mailer.AdminNotification(ctx, email.AdminNotificationData{
		Kind: email.NotifyNewPayment,
		Fields: []email.Field{
			{Label: "Étudiant", Value: fmt.Sprintf("%s (%s)", student.Name, student.Email)},
			{Label: "Montant", Value: amount + " " + payment.DefaultCurrency},
			{Label: "Type", Value: created.PaymentType.Info().Name},
			{Label: "Méthode", Value: created.Method().Label()},
			{Label: "Transaction", Value: txn},
		},
		SentAt:   sentAt(now),
		RecordID: created.ID,
	})

	return &payment.CreateResponse{Payment: created, Receipt: receipt}, nil
}

// Fees quotes the processing fee for an amount and method.
func (s *PaymentService) Fees(q *payment.FeeQuery) payment.FeeQuote {
	method := q.Method
	if method == "" {
		method = payment.MethodCard
	}
	return payment.CalculateFees(q.ParsedAmount(), method, payment.DefaultCurrency)
}

func (s *PaymentService) Mine(ctx context.Context, actor model.Actor) (*payment.MineResponse, error) {
	payments, err := s.payments.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	total, err := s.payments.SumCompletedByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	return &payment.MineResponse{
		Payments: payments,
		Summary:  payment.Summary{TotalAmount: total, Count: len(payments)},
	}, nil
}

func (s *PaymentService) Get(ctx context.Context, actor model.Actor, id int64) (*payment.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(p.UserID) {
		return nil, errNotOwner()
	}
	return p, nil
}

func (s *PaymentService) GetByTransaction(ctx context.Context, actor model.Actor, transactionID string) (*payment.Payment, error) {
	p, err := s.payments.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(p.UserID) {
		return nil, errNotOwner()
	}
	return p, nil
}

// Receipt rebuilds the receipt of a payment for its owner.
func (s *PaymentService) Receipt(ctx context.Context, actor model.Actor, id int64) (*payment.Receipt, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	receipt := payment.BuildReceipt(p, payment.ReceiptStudent{
		ID:    owner.ID,
		Name:  owner.FullName(),
		Email: owner.Email,
	}, s.institution, s.now())
	return &receipt, nil
}

func (s *PaymentService) List(ctx context.Context, q *payment.ListPaymentsQuery) (*payment.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	payments, total, err := s.payments.ListAll(ctx, q)
	if err != nil {
		return nil, err
	}

	return &payment.ListResponse{Payments: payments, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

func (s *PaymentService) UpdateStatus(ctx context.Context, p *payment.UpdateStatusPayload) (*payment.Payment, error) {
	return s.payments.UpdateStatus(ctx, p.ID, p.Status)
}

func (s *PaymentService) Stats(ctx context.Context) (*payment.Stats, error) {
	return s.payments.Stats(ctx, s.now())
}

func (s *PaymentService) Monthly(ctx context.Context, p *payment.MonthlyParams) (*payment.MonthlyResponse, error) {
	days, err := s.payments.DailyTotals(ctx, p.Year, p.Month)
	if err != nil {
		return nil, err
	}
	return &payment.MonthlyResponse{Year: p.Year, Month: p.Month, Days: days}, nil
}
