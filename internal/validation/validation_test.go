package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strongpassword"`
	FirstName string `json:"first_name" validate:"required,personname"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Level     string `json:"level" validate:"omitempty,oneof=bac bac+2"`
}

func (p *signupPayload) Validate() error {
	return Struct(p)
}

type customPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (p *customPayload) Validate() error {
	if p.Start > p.End {
		return CustomValidationErrors{{Field: "end", Message: "must be after start"}}
	}
	return nil
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_Valid(t *testing.T) {
	c := newContext(`{"email":"marie@campus.fr","password":"Secret123","first_name":"Marie-Élise","phone":"+33 612345678"}`)

	payload := &signupPayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, "Marie-Élise", payload.FirstName)
}

func TestBindAndValidate_FieldErrorsUseJSONNames(t *testing.T) {
	c := newContext(`{"email":"nope","password":"weak","first_name":"R2D2","level":"master"}`)

	err := BindAndValidate(c, &signupPayload{})
	require.Error(t, err)

	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Contains(t, byField["password"], "uppercase")
	assert.Contains(t, byField["first_name"], "letters")
	assert.Equal(t, "must be one of: bac bac+2", byField["level"])
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(`{"email":`)

	err := BindAndValidate(c, &signupPayload{})

	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(`{"start":"2025-02-01","end":"2025-01-01"}`)

	err := BindAndValidate(c, &customPayload{})

	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "end", httpErr.Errors[0].Field)
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Abcdefg1"))
	assert.False(t, IsStrongPassword("Abcdef1"))
	assert.False(t, IsStrongPassword("abcdefg1"))
	assert.False(t, IsStrongPassword("ABCDEFG1"))
	assert.False(t, IsStrongPassword("Abcdefgh"))
}

func TestIsPersonName(t *testing.T) {
	assert.True(t, IsPersonName("O'Neil"))
	assert.True(t, IsPersonName("Jean Pierre"))
	assert.False(t, IsPersonName("A"))
	assert.False(t, IsPersonName("Robert'); DROP"))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("0612345678"))
	assert.True(t, IsPhone("+33 (6) 12-34"))
	assert.False(t, IsPhone("123"))
	assert.False(t, IsPhone("06abc45678"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Hello  World", SanitizeText(`Hello <script>alert('x')</script> World`))
	assert.Equal(t, "Tom & Jerry", SanitizeText("  Tom & Jerry "))
	assert.Equal(t, "x", SanitizeText("&lt;b&gt;x&lt;/b&gt;"))
	assert.Equal(t, "a < b", SanitizeText("a &lt; b"))
	assert.NotContains(t, SanitizeText("&lt;script&gt;alert(1)&lt;/script&gt;ok"), "<")
	assert.Nil(t, SanitizeOptional(nil))

	empty := "<b></b>"
	assert.Nil(t, SanitizeOptional(&empty))
}
