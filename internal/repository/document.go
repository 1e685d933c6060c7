package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model/document"
	"github.com/jackc/pgx/v5"
)

const documentColumns = `id, user_id, document_type, status, file_path, requested_at, delivered_at`

type DocumentRepository struct {
	db *database.Database
}

func NewDocumentRepository(db *database.Database) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, userID int64, docType document.Type) (*document.Document, error) {
	rows, err := r.db.Pool.Query(ctx, `
		INSERT INTO documents (user_id, document_type, status)
		VALUES (@user_id, @document_type, @status)
		RETURNING `+documentColumns,
		pgx.NamedArgs{"user_id": userID, "document_type": docType, "status": document.StatusPending})
	doc, err := collectOne[document.Document](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document request user_id=%d: %w", userID, err)
	}

	return doc, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*document.Document, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = @id`, pgx.NamedArgs{"id": id})
	doc, err := collectOne[document.Document](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get document id=%d from table:documents: %w", id, err)
	}

	return doc, nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID int64) ([]document.Document, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = @user_id ORDER BY requested_at DESC`,
		pgx.NamedArgs{"user_id": userID})
	docs, err := collect[document.Document](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents user_id=%d: %w", userID, err)
	}

	return docs, nil
}

func (r *DocumentRepository) ListAll(ctx context.Context, q *document.ListDocumentsQuery) ([]document.Document, int64, error) {
	f := newFilter().
		eq("status", "status", q.Status).
		eq("document_type", "document_type", q.DocumentType)
	page := q.Pagination.Normalized()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents`+f.where()+` ORDER BY requested_at DESC LIMIT @limit OFFSET @offset`,
		f.paged(page))
	docs, err := collect[document.Document](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM documents`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return docs, total, nil
}

// UpdateStatus records the new status and stamps delivered_at. A non-nil
// filePath replaces the attached file.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id int64, status document.Status, filePath *string) (*document.Document, error) {
	rows, err := r.db.Pool.Query(ctx, `
		UPDATE documents SET
			status       = @status,
			file_path    = COALESCE(@file_path, file_path),
			delivered_at = CURRENT_TIMESTAMP
		WHERE id = @id
		RETURNING `+documentColumns,
		pgx.NamedArgs{"id": id, "status": status, "file_path": filePath})
	doc, err := collectOne[document.Document](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update document id=%d from table:documents: %w", id, err)
	}

	return doc, nil
}

// Delete locks the request and removes it once guard accepts. It returns
// the deleted row so the caller can clean up its file.
func (r *DocumentRepository) Delete(ctx context.Context, id int64, guard Guard[document.Document]) (*document.Document, error) {
	var deleted *document.Document

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := collectOne[document.Document](tx.Query(ctx,
			`SELECT `+documentColumns+` FROM documents WHERE id = @id FOR UPDATE`, pgx.NamedArgs{"id": id}))
		if err != nil {
			return fmt.Errorf("failed to get document id=%d from table:documents: %w", id, err)
		}
		if err := guard.check(current); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("failed to delete document id=%d: %w", id, err)
		}
		deleted = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func (r *DocumentRepository) Stats(ctx context.Context) (*document.Stats, error) {
	var (
		stats document.Stats
		err   error
	)

	if stats.ByType, err = countBy(ctx, r.db.Pool,
		`SELECT document_type AS key, COUNT(*) AS count FROM documents GROUP BY document_type`); err != nil {
		return nil, fmt.Errorf("failed to count documents by type: %w", err)
	}
	if stats.ByStatus, err = countBy(ctx, r.db.Pool,
		`SELECT status AS key, COUNT(*) AS count FROM documents GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count documents by status: %w", err)
	}

	stats.Pending = stats.ByStatus[string(document.StatusPending)]
	stats.Completed = stats.ByStatus[string(document.StatusProcessed)] + stats.ByStatus[string(document.StatusAvailable)]

	return &stats, nil
}
