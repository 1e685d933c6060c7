package user

import (
	"strings"
	"time"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
)

// ------------------------------------------------------------

type RegisterPayload struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,strongpassword,max=72"`
	FirstName string  `json:"first_name" validate:"required,min=2,max=100,personname"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=100,personname"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	School    *string `json:"school" validate:"omitempty,min=2,max=255"`
	Program   *string `json:"program" validate:"omitempty,min=2,max=255"`
}

func (p *RegisterPayload) Validate() error {
	p.Email = NormalizeEmail(p.Email)
	return validation.Struct(p)
}

// ------------------------------------------------------------

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginPayload) Validate() error {
	p.Email = NormalizeEmail(p.Email)
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateProfilePayload changes the caller's own profile. Nil fields are
// left untouched; email and role cannot be changed here.
type UpdateProfilePayload struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100,personname"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100,personname"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	School    *string `json:"school" validate:"omitempty,min=2,max=255"`
	Program   *string `json:"program" validate:"omitempty,min=2,max=255"`
}

func (p *UpdateProfilePayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListUsersQuery struct {
	model.Pagination
	Role string `query:"role" validate:"omitempty,oneof=student admin"`
}

func (q *ListUsersQuery) Validate() error {
	return validation.Struct(q)
}

// ------------------------------------------------------------

type GetUserParams struct {
	model.IDParam
}

func (p *GetUserParams) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateUserPayload is the admin edit; it may change the role.
type UpdateUserPayload struct {
	model.IDParam
	UpdateProfilePayload
	Role *model.Role `json:"role" validate:"omitempty,oneof=student admin"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type AuthResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ListResponse struct {
	Users      []User               `json:"users"`
	Pagination model.PaginationMeta `json:"pagination"`
}

// NormalizeEmail lowercases and trims an address before lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
