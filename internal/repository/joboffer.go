package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model/joboffer"
	"github.com/jackc/pgx/v5"
)

const jobOfferColumns = `id, type, company, contact_person, email, phone, address, city, postal_code, sector,
	missions, education_level, file_path, status, created_at`

type JobOfferRepository struct {
	db *database.Database
}

func NewJobOfferRepository(db *database.Database) *JobOfferRepository {
	return &JobOfferRepository{db: db}
}

func (r *JobOfferRepository) Create(ctx context.Context, p *joboffer.CreateOfferPayload) (*joboffer.Offer, error) {
	stmt := `
		INSERT INTO job_offers (type, company, contact_person, email, phone, address, city, postal_code, sector,
			missions, education_level, status)
		VALUES (@type, @company, @contact_person, @email, @phone, @address, @city, @postal_code, @sector,
			@missions, @education_level, @status)
		RETURNING ` + jobOfferColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"type":            p.Type,
		"company":         p.Company,
		"contact_person":  p.ContactPerson,
		"email":           p.Email,
		"phone":           p.Phone,
		"address":         p.Address,
		"city":            p.City,
		"postal_code":     p.PostalCode,
		"sector":          p.Sector,
		"missions":        p.Missions,
		"education_level": p.EducationLevel,
		"status":          joboffer.StatusPending,
	})
	offer, err := collectOne[joboffer.Offer](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job offer company=%s: %w", p.Company, err)
	}

	return offer, nil
}

func (r *JobOfferRepository) GetByID(ctx context.Context, id int64) (*joboffer.Offer, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+jobOfferColumns+` FROM job_offers WHERE id = @id`, pgx.NamedArgs{"id": id})
	offer, err := collectOne[joboffer.Offer](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get job offer id=%d from table:job_offers: %w", id, err)
	}

	return offer, nil
}

// List returns one page of offers and the number of offers matching the
// same filters.
func (r *JobOfferRepository) List(ctx context.Context, q *joboffer.ListOffersQuery) ([]joboffer.Offer, int64, error) {
	f := newFilter().
		eq("status", "status", q.Status).
		eq("type", "type", q.Type).
		ilike("city", "city", q.City).
		ilike("sector", "sector", q.Sector)
	page := q.Pagination.Normalized()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+jobOfferColumns+` FROM job_offers`+f.where()+` ORDER BY created_at DESC LIMIT @limit OFFSET @offset`,
		f.paged(page))
	offers, err := collect[joboffer.Offer](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list job offers: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM job_offers`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count job offers: %w", err)
	}

	return offers, total, nil
}

// Search matches the company name when a free-text query is given and
// otherwise applies the structured filters to active offers.
func (r *JobOfferRepository) Search(ctx context.Context, q *joboffer.SearchOffersQuery) ([]joboffer.Offer, error) {
	f := newFilter()
	if q.Query != "" {
		f.ilike("company", "company", q.Query)
	} else {
		f.eq("status", "status", string(joboffer.StatusActive)).
			eq("type", "type", q.Type).
			ilike("city", "city", q.City).
			ilike("sector", "sector", q.Sector)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+jobOfferColumns+` FROM job_offers`+f.where()+` ORDER BY created_at DESC LIMIT 1000`,
		f.args)
	offers, err := collect[joboffer.Offer](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to search job offers: %w", err)
	}

	return offers, nil
}

func (r *JobOfferRepository) UpdateStatus(ctx context.Context, id int64, status joboffer.Status) (*joboffer.Offer, error) {
	rows, err := r.db.Pool.Query(ctx,
		`UPDATE job_offers SET status = @status WHERE id = @id RETURNING `+jobOfferColumns,
		pgx.NamedArgs{"id": id, "status": status})
	offer, err := collectOne[joboffer.Offer](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update job offer id=%d from table:job_offers: %w", id, err)
	}

	return offer, nil
}

// AttachFile stores the path of an uploaded offer description.
func (r *JobOfferRepository) AttachFile(ctx context.Context, id int64, path string) (*joboffer.Offer, error) {
	rows, err := r.db.Pool.Query(ctx,
		`UPDATE job_offers SET file_path = @file_path WHERE id = @id RETURNING `+jobOfferColumns,
		pgx.NamedArgs{"id": id, "file_path": path})
	offer, err := collectOne[joboffer.Offer](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to attach file to job offer id=%d from table:job_offers: %w", id, err)
	}

	return offer, nil
}

func (r *JobOfferRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM job_offers WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job offer id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete job offer id=%d from table:job_offers: %w", id, pgx.ErrNoRows)
	}

	return nil
}

func (r *JobOfferRepository) Stats(ctx context.Context) (*joboffer.Stats, error) {
	var (
		stats joboffer.Stats
		err   error
	)

	if stats.Total, err = count(ctx, r.db.Pool, `SELECT COUNT(*) FROM job_offers`); err != nil {
		return nil, fmt.Errorf("failed to count job offers: %w", err)
	}
	if stats.ByType, err = countBy(ctx, r.db.Pool,
		`SELECT type AS key, COUNT(*) AS count FROM job_offers GROUP BY type`); err != nil {
		return nil, fmt.Errorf("failed to count job offers by type: %w", err)
	}
	if stats.ByCity, err = countBy(ctx, r.db.Pool,
		`SELECT city AS key, COUNT(*) AS count FROM job_offers WHERE city IS NOT NULL GROUP BY city`); err != nil {
		return nil, fmt.Errorf("failed to count job offers by city: %w", err)
	}
	if stats.ByStatus, err = countBy(ctx, r.db.Pool,
		`SELECT status AS key, COUNT(*) AS count FROM job_offers GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count job offers by status: %w", err)
	}
	if stats.Recent, err = count(ctx, r.db.Pool,
		`SELECT COUNT(*) FROM job_offers WHERE created_at >= NOW() - INTERVAL '30 days'`); err != nil {
		return nil, fmt.Errorf("failed to count recent job offers: %w", err)
	}

	return &stats, nil
}
