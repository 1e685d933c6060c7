package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/token"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(users *fakeUsers, mailer *fakeMailer) (*AuthService, *token.Manager) {
	tokens := token.NewManager("0123456789abcdef0123456789abcdef", time.Hour, "campus-portal")
	return NewAuthService(users, tokens, mailer, bcrypt.MinCost, &testLogger), tokens
}

func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	if code != "" {
		assert.Equal(t, code, httpErr.Code)
	}
}

func TestAuthService_Register(t *testing.T) {
	users := newFakeUsers()
	mailer := &fakeMailer{}
	svc, tokens := newAuthService(users, mailer)

	res, err := svc.Register(context.Background(), &user.RegisterPayload{
		Email:     "awa@example.com",
		Password:  "Secret123",
		FirstName: "Awa",
		LastName:  "Diallo",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleStudent, res.User.Role)
	assert.NotEqual(t, "Secret123", res.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("Secret123")))

	claims, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.ID)

	assert.Equal(t, []string{"welcome"}, mailer.kinds())
	assert.Equal(t, "awa@example.com", mailer.sent[0].To)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _ := newAuthService(seededUsers(), &fakeMailer{})

	_, err := svc.Register(context.Background(), &user.RegisterPayload{
		Email: "awa@example.com", Password: "Secret123", FirstName: "Awa", LastName: "Diallo",
	})
	requireHTTPError(t, err, http.StatusBadRequest, errs.CodeEmailAlreadyRegistered)
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newAuthService(users, &fakeMailer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &user.RegisterPayload{
		Email: "awa@example.com", Password: "Secret123", FirstName: "Awa", LastName: "Diallo",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, &user.LoginPayload{Email: "awa@example.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, &user.LoginPayload{Email: "awa@example.com", Password: "Wrong1234"})
	requireHTTPError(t, err, http.StatusUnauthorized, errs.CodeInvalidCredentials)

	_, err = svc.Login(ctx, &user.LoginPayload{Email: "nobody@example.com", Password: "Secret123"})
	requireHTTPError(t, err, http.StatusUnauthorized, errs.CodeInvalidCredentials)
}

func TestAuthService_Profile(t *testing.T) {
	svc, _ := newAuthService(seededUsers(), &fakeMailer{})
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, student, &user.UpdateProfilePayload{School: ptr("ESTIA")})
	require.NoError(t, err)
	assert.Equal(t, "ESTIA", *u.School)
	assert.Equal(t, model.RoleStudent, u.Role)

	u, err = svc.Profile(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, "Awa", u.FirstName)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	users := newFakeUsers()
	svc, _ := newAuthService(users, &fakeMailer{})
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, " Root@Example.com ", "Secret123", "Root", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	u, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	created, err = svc.EnsureAdmin(ctx, "root@example.com", "Secret123", "Root", "Admin")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(ctx, "", "", "Root", "Admin")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUserService_DeleteSelfAndStudent(t *testing.T) {
	users := seededUsers()
	svc := NewUserService(users, &testLogger)
	ctx := context.Background()

	err := svc.Delete(ctx, admin, admin.UserID)
	requireHTTPError(t, err, http.StatusBadRequest, "")

	require.NoError(t, svc.Delete(ctx, admin, 3))
	_, err = users.GetByID(ctx, 3)
	assert.True(t, isNotFound(err))
}

func TestUserService_ListAndUpdate(t *testing.T) {
	svc := NewUserService(seededUsers(), &testLogger)
	ctx := context.Background()

	res, err := svc.List(ctx, &user.ListUsersQuery{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLimit, res.Pagination.Limit)
	assert.Equal(t, int64(3), res.Pagination.Total)

	role := model.RoleAdmin
	u, err := svc.Update(ctx, &user.UpdateUserPayload{IDParam: model.IDParam{ID: 2}, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
}
