// Package user models portal accounts.
package user

import (
	"time"

	"github.com/deppfellow/campus-portal/internal/model"
)

// User is a row of the users table. PasswordHash never leaves the server.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Phone        *string    `json:"phone" db:"phone"`
	Role         model.Role `json:"role" db:"role"`
	School       *string    `json:"school" db:"school"`
	Program      *string    `json:"program" db:"program"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Stats is the admin overview of accounts.
type Stats struct {
	Total     int64            `json:"total"`
	ByRole    map[string]int64 `json:"byRole"`
	BySchool  map[string]int64 `json:"bySchool"`
	ByProgram map[string]int64 `json:"byProgram"`
}
