package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model/payment"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, user_id, amount, payment_type, payment_method, transaction_id, status, created_at`

type PaymentRepository struct {
	db *database.Database
}

func NewPaymentRepository(db *database.Database) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	stmt := `
		INSERT INTO payments (user_id, amount, payment_type, payment_method, transaction_id, status)
		VALUES (@user_id, @amount, @payment_type, @payment_method, @transaction_id, @status)
		RETURNING ` + paymentColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":        p.UserID,
		"amount":         p.Amount,
		"payment_type":   p.PaymentType,
		"payment_method": p.PaymentMethod,
		"transaction_id": p.TransactionID,
		"status":         p.Status,
	})
	created, err := collectOne[payment.Payment](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment user_id=%d: %w", p.UserID, err)
	}

	return created, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = @id`, pgx.NamedArgs{"id": id})
	p, err := collectOne[payment.Payment](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment id=%d from table:payments: %w", id, err)
	}

	return p, nil
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = @transaction_id`,
		pgx.NamedArgs{"transaction_id": transactionID})
	p, err := collectOne[payment.Payment](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment by transaction from table:payments: %w", err)
	}

	return p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]payment.Payment, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE user_id = @user_id ORDER BY created_at DESC`,
		pgx.NamedArgs{"user_id": userID})
	payments, err := collect[payment.Payment](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments user_id=%d: %w", userID, err)
	}

	return payments, nil
}

// SumCompletedByUser totals the completed payments of a user.
func (r *PaymentRepository) SumCompletedByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE user_id = @user_id AND status = @status`,
		pgx.NamedArgs{"user_id": userID, "status": payment.StatusComplete}).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments user_id=%d: %w", userID, err)
	}

	return total, nil
}

func (r *PaymentRepository) ListAll(ctx context.Context, q *payment.ListPaymentsQuery) ([]payment.Payment, int64, error) {
	f := newFilter().
		eq("status", "status", q.Status).
		eq("payment_type", "payment_type", q.PaymentType)
	page := q.Pagination.Normalized()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments`+f.where()+` ORDER BY created_at DESC LIMIT @limit OFFSET @offset`,
		f.paged(page))
	payments, err := collect[payment.Payment](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM payments`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return payments, total, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status payment.Status) (*payment.Payment, error) {
	rows, err := r.db.Pool.Query(ctx,
		`UPDATE payments SET status = @status WHERE id = @id RETURNING `+paymentColumns,
		pgx.NamedArgs{"id": id, "status": status})
	p, err := collectOne[payment.Payment](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment id=%d from table:payments: %w", id, err)
	}

	return p, nil
}

// Stats aggregates every payment. Amounts only include completed payments,
// except for the per-month buckets which sum every status.
func (r *PaymentRepository) Stats(ctx context.Context, now time.Time) (*payment.Stats, error) {
	stats := payment.Stats{ByMonth: map[string]payment.MonthBucket{}}
	var err error

	err = r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount) FILTER (WHERE status = @status), 0)
		FROM payments`,
		pgx.NamedArgs{"status": payment.StatusComplete}).Scan(&stats.TotalCount, &stats.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to total payments: %w", err)
	}

	if stats.ByStatus, err = countBy(ctx, r.db.Pool,
		`SELECT status AS key, COUNT(*) AS count FROM payments GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count payments by status: %w", err)
	}
	if stats.ByPaymentType, err = countBy(ctx, r.db.Pool,
		`SELECT payment_type AS key, COUNT(*) AS count FROM payments GROUP BY payment_type`); err != nil {
		return nil, fmt.Errorf("failed to count payments by type: %w", err)
	}

	months, err := collect[payment.MonthlyRow](r.db.Pool.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount
		FROM payments
		GROUP BY 1
		ORDER BY 1`))
	if err != nil {
		return nil, fmt.Errorf("failed to group payments by month: %w", err)
	}
	for _, m := range months {
		stats.ByMonth[m.Month] = payment.MonthBucket{Count: m.Count, Amount: m.Amount}
	}

	days, err := r.DailyTotals(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		stats.CurrentMonth.Count += d.Count
		stats.CurrentMonth.Total = stats.CurrentMonth.Total.Add(d.Total)
	}

	stats.MonthlyAverage = payment.MonthlyAverage(stats.TotalAmount, len(stats.ByMonth))

	return &stats, nil
}

// DailyTotals sums completed payments per day of the given month.
func (r *PaymentRepository) DailyTotals(ctx context.Context, year, month int) ([]payment.DailyTotal, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	days, err := collect[payment.DailyTotal](r.db.Pool.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		FROM payments
		WHERE status = @status AND created_at >= @start AND created_at < @end
		GROUP BY 1
		ORDER BY 1`,
		pgx.NamedArgs{"status": payment.StatusComplete, "start": start, "end": start.AddDate(0, 1, 0)}))
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments for %04d-%02d: %w", year, month, err)
	}

	return days, nil
}
