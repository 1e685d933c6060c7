package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password, first_name, last_name, phone, role, school, program, created_at, updated_at`

type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	stmt := `
		INSERT INTO users (email, password, first_name, last_name, phone, role, school, program)
		VALUES (@email, @password, @first_name, @last_name, @phone, @role, @school, @program)
		RETURNING ` + userColumns

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"email":      u.Email,
		"password":   u.PasswordHash,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"role":       u.Role,
		"school":     u.School,
		"program":    u.Program,
	})
	created, err := collectOne[user.User](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user email=%s: %w", u.Email, err)
	}

	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	u, err := collectOne[user.User](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get user id=%d from table:users: %w", id, err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = @email`, pgx.NamedArgs{"email": email})
	u, err := collectOne[user.User](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email from table:users: %w", err)
	}

	return u, nil
}

// ExistsByEmail reports whether an account already uses email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = @email)`, pgx.NamedArgs{"email": email}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}

	return exists, nil
}

// List returns one page of accounts, newest first, and the number of rows
// matching the filter.
func (r *UserRepository) List(ctx context.Context, q *user.ListUsersQuery) ([]user.User, int64, error) {
	f := newFilter().eq("role", "role", q.Role)
	page := q.Pagination.Normalized()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users`+f.where()+` ORDER BY created_at DESC LIMIT @limit OFFSET @offset`,
		f.paged(page))
	users, err := collect[user.User](rows, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := count(ctx, r.db.Pool, `SELECT COUNT(*) FROM users`+f.where(), f.args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

// Update applies the non-nil fields of p, and role when given.
func (r *UserRepository) Update(ctx context.Context, id int64, p *user.UpdateProfilePayload, role *model.Role) (*user.User, error) {
	stmt := `
		UPDATE users SET
			first_name = COALESCE(@first_name, first_name),
			last_name  = COALESCE(@last_name, last_name),
			phone      = COALESCE(@phone, phone),
			school     = COALESCE(@school, school),
			program    = COALESCE(@program, program),
			role       = COALESCE(@role, role)
		WHERE id = @id
		RETURNING ` + userColumns

	var roleArg *string
	if role != nil {
		s := string(*role)
		roleArg = &s
	}

	rows, err := r.db.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":         id,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"phone":      p.Phone,
		"school":     p.School,
		"program":    p.Program,
		"role":       roleArg,
	})
	u, err := collectOne[user.User](rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update user id=%d from table:users: %w", id, err)
	}

	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete user id=%d from table:users: %w", id, pgx.ErrNoRows)
	}

	return nil
}

func (r *UserRepository) Stats(ctx context.Context) (*user.Stats, error) {
	var (
		stats user.Stats
		err   error
	)

	if stats.Total, err = count(ctx, r.db.Pool, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.ByRole, err = countBy(ctx, r.db.Pool,
		`SELECT role AS key, COUNT(*) AS count FROM users GROUP BY role`); err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	if stats.BySchool, err = countBy(ctx, r.db.Pool,
		`SELECT school AS key, COUNT(*) AS count FROM users WHERE school IS NOT NULL GROUP BY school`); err != nil {
		return nil, fmt.Errorf("failed to count users by school: %w", err)
	}
	if stats.ByProgram, err = countBy(ctx, r.db.Pool,
		`SELECT program AS key, COUNT(*) AS count FROM users WHERE program IS NOT NULL GROUP BY program`); err != nil {
		return nil, fmt.Errorf("failed to count users by program: %w", err)
	}

	return &stats, nil
}
