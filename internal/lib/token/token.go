// Package token issues and verifies the HS256 access tokens handed out at
// login and registration.
package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

type Claims struct {
	ID    int64      `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts verified claims to the request actor.
func (c *Claims) Actor() model.Actor {
	return model.Actor{UserID: c.ID, Email: c.Email, Role: c.Role}
}

type Manager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(secret string, expiry time.Duration, issuer string) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// Generate signs a token for actor and returns it with its expiry.
func (m *Manager) Generate(actor model.Actor) (string, time.Time, error) {
	if actor.UserID <= 0 || !actor.Role.Valid() {
		return "", time.Time{}, ErrInvalidToken
	}

	now := m.now()
	expiresAt := now.Add(m.expiry)
	claims := &Claims{
		ID:    actor.UserID,
		Email: actor.Email,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *Manager) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID <= 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenFromHeader extracts the token from an "Authorization: Bearer" value.
func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
