package token

import (
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager(testSecret, time.Hour, "campus-portal")

	before := time.Now()
	tok, exp, err := m.Generate(model.Actor{UserID: 42, Email: "awa@example.com", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "campus-portal", claims.Issuer)
	assert.Equal(t, model.Actor{UserID: 42, Email: "awa@example.com", Role: model.RoleStudent}, claims.Actor())
}

func TestManager_GenerateRejectsIncompleteActor(t *testing.T) {
	m := NewManager(testSecret, time.Hour, "campus-portal")

	_, _, err := m.Generate(model.Actor{UserID: 0, Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = m.Generate(model.Actor{UserID: 1, Role: "professor"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Validate(t *testing.T) {
	m := NewManager(testSecret, time.Hour, "campus-portal")
	actor := model.Actor{UserID: 1, Email: "admin@example.com", Role: model.RoleAdmin}

	expired := NewManager(testSecret, time.Hour, "campus-portal")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, _, err := expired.Generate(actor)
	require.NoError(t, err)

	otherIssuer, _, err := NewManager(testSecret, time.Hour, "elsewhere").Generate(actor)
	require.NoError(t, err)

	otherSecret, _, err := NewManager("ffffffffffffffffffffffffffffffff", time.Hour, "campus-portal").Generate(actor)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name string
		tok  string
		want error
	}{
		{"empty", "  ", ErrMissingToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{"expired", expiredTok, ErrInvalidToken},
		{"wrong issuer", otherIssuer, ErrInvalidToken},
		{"wrong secret", otherSecret, ErrInvalidToken},
		{"alg none", none, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.tok)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenFromHeader(t *testing.T) {
	tok, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = TokenFromHeader("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := TokenFromHeader(h)
		assert.ErrorIs(t, err, ErrMissingToken, h)
	}
}
