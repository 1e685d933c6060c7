package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model/application"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, school, program, education_level, motivation, cv_path, status, created_at`

type ApplicationRepository struct {
	db *database.Database
}

func NewApplicationRepository(db *database.Database) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, userID int64, p *application.CreateApplicationPayload) (*application.Application, error) {
	stmt := `
		INSERT INTO applications (user_id, school, program, education_level, motivation, cv_path, status)
		VALUES (@user_id, @school, @program, @education_level, @motivation, @cv_path, @status)
		RETURNING ` + applicationColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":         userID,
		"school":          p.School,
		"program":         p.Program,
		"education_level": p.EducationLevel,
		"motivation":      p.Motivation,
		"cv_path":         p.CVPath,
		"status":          application.StatusInProgress,
	})
	app, err := collectOne[application.Application](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert application user_id=%d: %w", userID, err)
	}

	return app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*application.Application, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = @id`, pgx.NamedArgs{"id": id})
	app, err := collectOne[application.Application](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get application id=%d from table:applications: %w", id, err)
	}

	return app, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]application.Application, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = @user_id ORDER BY created_at DESC`,
		pgx.NamedArgs{"user_id": userID})
	apps, err := collect[application.Application](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications user_id=%d: %w", userID, err)
	}

	return apps, nil
}

// ListAll returns one page of applications joined with the applicant's
// identity, plus the number of rows matching the filters.
func (r *ApplicationRepository) ListAll(ctx context.Context, q *application.ListApplicationsQuery) ([]application.PopulatedApplication, int64, error) {
	f := newFilter().
		eq("a.status", "status", q.Status).
		ilike("a.school", "school", q.School).
		ilike("a.program", "program", q.Program)
	page := q.Pagination.Normalized()

	stmt := `
		SELECT a.id, a.user_id, a.school, a.program, a.education_level, a.motivation, a.cv_path, a.status, a.created_at,
			u.first_name, u.last_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.user_id` + f.where() + `
		ORDER BY a.created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Pool.Query(ctx, stmt, f.paged(page))
	apps, err := collect[application.PopulatedApplication](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM applications a`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return apps, total, nil
}

// Update locks the application, lets guard veto the change and applies the
// non-nil fields of p.
func (r *ApplicationRepository) Update(ctx context.Context, id int64, p *application.UpdateApplicationPayload, guard Guard[application.Application]) (*application.Application, error) {
	var updated *application.Application

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := collectOne[application.Application](tx.Query(ctx,
			`SELECT `+applicationColumns+` FROM applications WHERE id = @id FOR UPDATE`, pgx.NamedArgs{"id": id}))
		if err != nil {
			return fmt.Errorf("failed to get application id=%d from table:applications: %w", id, err)
		}
		if err := guard.check(current); err != nil {
			return err
		}

		stmt := `
			UPDATE applications SET
				school          = COALESCE(@school, school),
				program         = COALESCE(@program, program),
				education_level = COALESCE(@education_level, education_level),
				motivation      = COALESCE(@motivation, motivation),
				cv_path         = COALESCE(@cv_path, cv_path)
			WHERE id = @id
			RETURNING ` + applicationColumns

		updated, err = collectOne[application.Application](tx.Query(ctx, stmt, pgx.NamedArgs{
			"id":              id,
			"school":          p.School,
			"program":         p.Program,
			"education_level": p.EducationLevel,
			"motivation":      p.Motivation,
			"cv_path":         p.CVPath,
		}))
		if err != nil {
			return fmt.Errorf("failed to update application id=%d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status application.Status) (*application.Application, error) {
	rows, err := r.db.Pool.Query(ctx,
		`UPDATE applications SET status = @status WHERE id = @id RETURNING `+applicationColumns,
		pgx.NamedArgs{"id": id, "status": status})
	app, err := collectOne[application.Application](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update application id=%d from table:applications: %w", id, err)
	}

	return app, nil
}

// Delete locks the application and removes it once guard accepts.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64, guard Guard[application.Application]) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := collectOne[application.Application](tx.Query(ctx,
			`SELECT `+applicationColumns+` FROM applications WHERE id = @id FOR UPDATE`, pgx.NamedArgs{"id": id}))
		if err != nil {
			return fmt.Errorf("failed to get application id=%d from table:applications: %w", id, err)
		}
		if err := guard.check(current); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE id = @id`, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("failed to delete application id=%d: %w", id, err)
		}
		return nil
	})
}

func (r *ApplicationRepository) Stats(ctx context.Context) (*application.Stats, error) {
	var (
		stats application.Stats
		err   error
	)

	if stats.Total, err = count(ctx, r.db.Pool, `SELECT COUNT(*) FROM applications`); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	if stats.Pending, err = count(ctx, r.db.Pool,
		`SELECT COUNT(*) FROM applications WHERE status = @status`,
		pgx.NamedArgs{"status": application.StatusInProgress}); err != nil {
		return nil, fmt.Errorf("failed to count pending applications: %w", err)
	}
	if stats.ByStatus, err = countBy(ctx, r.db.Pool,
		`SELECT status AS key, COUNT(*) AS count FROM applications GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	if stats.BySchool, err = countBy(ctx, r.db.Pool,
		`SELECT school AS key, COUNT(*) AS count FROM applications GROUP BY school`); err != nil {
		return nil, fmt.Errorf("failed to count applications by school: %w", err)
	}
	if stats.ByProgram, err = countBy(ctx, r.db.Pool,
		`SELECT program AS key, COUNT(*) AS count FROM applications GROUP BY program`); err != nil {
		return nil, fmt.Errorf("failed to count applications by program: %w", err)
	}
	if stats.Last30Days, err = count(ctx, r.db.Pool,
		`SELECT COUNT(*) FROM applications WHERE created_at >= NOW() - INTERVAL '30 days'`); err != nil {
		return nil, fmt.Errorf("failed to count recent applications: %w", err)
	}

	return &stats, nil
}
