package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/lib/token"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type authUserStore interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id int64, p *user.UpdateProfilePayload, role *model.Role) (*user.User, error)
}

type AuthService struct {
	users      authUserStore
	tokens     *token.Manager
	mailer     Mailer
	bcryptCost int
	logger     *zerolog.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(users authUserStore, tokens *token.Manager, mailer Mailer, bcryptCost int, logger *zerolog.Logger) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("campus-portal-dummy-password"), bcryptCost)
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		logger:     logger,
		dummyHash:  dummy,
	}
}

func errInvalidCredentials() *errs.HTTPError {
	return errs.NewUnauthorizedErrorWithCode("Invalid email or password", errs.CodeInvalidCredentials)
}

func (s *AuthService) issue(u *user.User) (*user.AuthResponse, error) {
	tok, expiresAt, err := s.tokens.Generate(model.Actor{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token for user id=%d: %w", u.ID, err)
	}
	return &user.AuthResponse{User: u, Token: tok, ExpiresAt: expiresAt}, nil
}

// Register creates a student account and signs it in.
func (s *AuthService) Register(ctx context.Context, p *user.RegisterPayload) (*user.AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewBadRequestError("Email is already registered", false, errs.Ptr(errs.CodeEmailAlreadyRegistered), nil, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &user.User{
		Email:        p.Email,
		PasswordHash: string(hash),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		Role:         model.RoleStudent,
		School:       p.School,
		Program:      p.Program,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	s.mailer.Welcome(ctx, created.Email, email.WelcomeData{FirstName: created.FirstName})

	return s.issue(created)
}

func (s *AuthService) Login(ctx context.Context, p *user.LoginPayload) (*user.AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, p.Email)
	if err != nil {
		if isNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(p.Password))
			return nil, errInvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(p.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials()
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	return s.issue(u)
}

func (s *AuthService) Profile(ctx context.Context, actor model.Actor) (*user.User, error) {
	return s.users.GetByID(ctx, actor.UserID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor model.Actor, p *user.UpdateProfilePayload) (*user.User, error) {
	return s.users.Update(ctx, actor.UserID, p, nil)
}

// EnsureAdmin creates an admin account for email unless one exists. It
// reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, adminEmail, password, firstName, lastName string) (bool, error) {
	adminEmail = user.NormalizeEmail(adminEmail)
	if adminEmail == "" || password == "" {
		return false, nil
	}

	exists, err := s.users.ExistsByEmail(ctx, adminEmail)
	if err != nil || exists {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := s.users.Create(ctx, &user.User{
		Email:        adminEmail,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("bootstrap admin created")
	return true, nil
}
