package service

import (
	"context"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/rs/zerolog"
)

type userStore interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	List(ctx context.Context, q *user.ListUsersQuery) ([]user.User, int64, error)
	Update(ctx context.Context, id int64, p *user.UpdateProfilePayload, role *model.Role) (*user.User, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*user.Stats, error)
}

// UserService is the admin view over accounts.
type UserService struct {
	users  userStore
	logger *zerolog.Logger
}

func NewUserService(users userStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, q *user.ListUsersQuery) (*user.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	users, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &user.ListResponse{Users: users, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, p *user.UpdateUserPayload) (*user.User, error) {
	return s.users.Update(ctx, p.ID, &p.UpdateProfilePayload, p.Role)
}

// Delete removes an account. Admins cannot remove themselves.
func (s *UserService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if actor.UserID == id {
		return errs.NewBadRequestError("You cannot delete your own account", false, nil, nil, nil)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("deleted_by", actor.UserID).Msg("user deleted")
	return nil
}

func (s *UserService) Stats(ctx context.Context) (*user.Stats, error) {
	return s.users.Stats(ctx)
}
