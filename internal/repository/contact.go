package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model/contact"
	"github.com/jackc/pgx/v5"
)

const contactColumns = `id, first_name, last_name, email, phone, school, subject, message, status, created_at`

type ContactRepository struct {
	db *database.Database
}

func NewContactRepository(db *database.Database) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, p *contact.CreateMessagePayload) (*contact.Message, error) {
	stmt := `
		INSERT INTO contact_messages (first_name, last_name, email, phone, school, subject, message, status)
		VALUES (@first_name, @last_name, @email, @phone, @school, @subject, @message, @status)
		RETURNING ` + contactColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"email":      p.Email,
		"phone":      p.Phone,
		"school":     p.School,
		"subject":    p.Subject,
		"message":    p.Message,
		"status":     contact.StatusNew,
	})
	msg, err := collectOne[contact.Message](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact message: %w", err)
	}

	return msg, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*contact.Message, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+contactColumns+` FROM contact_messages WHERE id = @id`, pgx.NamedArgs{"id": id})
	msg, err := collectOne[contact.Message](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message id=%d from table:contact_messages: %w", id, err)
	}

	return msg, nil
}

func (r *ContactRepository) List(ctx context.Context, q *contact.ListMessagesQuery) ([]contact.Message, int64, error) {
	f := newFilter().eq("status", "status", q.Status)
	page := q.Pagination.Normalized()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contact_messages`+f.where()+` ORDER BY created_at DESC LIMIT @limit OFFSET @offset`,
		f.paged(page))
	messages, err := collect[contact.Message](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM contact_messages`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	return messages, total, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id int64, status contact.Status) (*contact.Message, error) {
	rows, err := r.db.Pool.Query(ctx,
		`UPDATE contact_messages SET status = @status WHERE id = @id RETURNING `+contactColumns,
		pgx.NamedArgs{"id": id, "status": status})
	msg, err := collectOne[contact.Message](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact message id=%d from table:contact_messages: %w", id, err)
	}

	return msg, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact message id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete contact message id=%d from table:contact_messages: %w", id, pgx.ErrNoRows)
	}

	return nil
}

// Stats groups subjects by their first three words so near-identical
// subjects land in the same bucket.
func (r *ContactRepository) Stats(ctx context.Context) (*contact.Stats, error) {
	var (
		stats contact.Stats
		err   error
	)

	if stats.Total, err = count(ctx, r.db.Pool, `SELECT COUNT(*) FROM contact_messages`); err != nil {
		return nil, fmt.Errorf("failed to count contact messages: %w", err)
	}
	if stats.ByStatus, err = countBy(ctx, r.db.Pool,
		`SELECT status AS key, COUNT(*) AS count FROM contact_messages GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count contact messages by status: %w", err)
	}
	if stats.BySubject, err = countBy(ctx, r.db.Pool, `
		SELECT array_to_string((regexp_split_to_array(trim(subject), '\s+'))[1:3], ' ') AS key, COUNT(*) AS count
		FROM contact_messages
		GROUP BY 1`); err != nil {
		return nil, fmt.Errorf("failed to count contact messages by subject: %w", err)
	}
	if stats.Last7Days, err = count(ctx, r.db.Pool,
		`SELECT COUNT(*) FROM contact_messages WHERE created_at >= NOW() - INTERVAL '7 days'`); err != nil {
		return nil, fmt.Errorf("failed to count recent contact messages: %w", err)
	}

	return &stats, nil
}
