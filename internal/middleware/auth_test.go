package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/token"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, *token.Manager) {
	t.Helper()
	tokens := token.NewManager(strings.Repeat("k", 32), time.Hour, "campus-portal")
	return &AuthMiddleware{tokens: tokens}, tokens
}

func bearer(t *testing.T, tokens *token.Manager, actor model.Actor) string {
	t.Helper()
	tok, _, err := tokens.Generate(actor)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireAuth(t *testing.T) {
	auth, tokens := newTestAuth(t)

	e := newTestEcho()
	e.GET("/me", func(c echo.Context) error {
		actor, ok := GetActor(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, map[string]any{
			"id":    actor.UserID,
			"role":  actor.Role,
			"email": c.Get(UserEmailKey),
			"uid":   GetUserID(c),
		})
	}, auth.RequireAuth)

	t.Run("missing header", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, errs.CodeMissingToken, decodeError(t, rec).Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.jwt")

		rec := serve(e, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, errs.CodeInvalidToken, decodeError(t, rec).Code)
	})

	t.Run("token from another secret", func(t *testing.T) {
		other := token.NewManager(strings.Repeat("x", 32), time.Hour, "campus-portal")
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, bearer(t, other, model.Actor{UserID: 3, Email: "x@y.z", Role: model.RoleAdmin}))

		rec := serve(e, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, bearer(t, tokens, model.Actor{UserID: 7, Email: "awa@campus.test", Role: model.RoleStudent}))

		rec := serve(e, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":7,"role":"student","email":"awa@campus.test","uid":"7"}`, rec.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	auth, tokens := newTestAuth(t)

	e := newTestEcho()
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, auth.RequireAuth, auth.RequireAdmin)
	e.GET("/unguarded", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, auth.RequireAdmin)

	call := func(path string, actor *model.Actor) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if actor != nil {
			req.Header.Set(echo.HeaderAuthorization, bearer(t, tokens, *actor))
		}
		return serve(e, req)
	}

	rec := call("/admin", &model.Actor{UserID: 2, Email: "s@campus.test", Role: model.RoleStudent})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, errs.CodeInsufficientRole, decodeError(t, rec).Code)

	rec = call("/admin", &model.Actor{UserID: 1, Email: "a@campus.test", Role: model.RoleAdmin})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call("/unguarded", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
