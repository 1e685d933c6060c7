package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("no token", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"forbidden with code", NewForbiddenErrorWithCode("not yours", CodeNotOwner), http.StatusForbidden, CodeNotOwner},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("locked", Ptr(CodeApplicationLocked)), http.StatusConflict, CodeApplicationLocked},
		{"too large", NewRequestEntityTooLargeError("big"), http.StatusRequestEntityTooLarge, CodeFileTooLarge},
		{"media type", NewUnsupportedMediaTypeError("exe"), http.StatusUnsupportedMediaType, CodeUnsupportedFileType},
		{"rate limited", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, CodeRateLimited},
		{"unavailable", NewServiceUnavailableError("db down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestHTTPError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Application not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "Application not found", httpErr.Message)
}

func TestHTTPError_WithMessageDoesNotMutate(t *testing.T) {
	base := NewForbiddenError("Forbidden", false)
	custom := base.WithMessage("Admins only")

	assert.Equal(t, "Forbidden", base.Message)
	assert.Equal(t, "Admins only", custom.Message)
	assert.Equal(t, base.Status, custom.Status)
}

func TestInvalidStatusError(t *testing.T) {
	err := InvalidStatusError([]string{"en_cours", "acceptée"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeInvalidStatus, err.Code)
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "must be one of: en_cours acceptée", err.Errors[0].Error)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
}
