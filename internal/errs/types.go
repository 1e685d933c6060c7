package errs

import (
	"net/http"
	"strings"
)

func newHTTPError(status int, message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewUnauthorizedError is returned when no credentials were presented or
// they could not be matched to an account.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message, override, nil)
}

// NewUnauthorizedErrorWithCode is NewUnauthorizedError with a specific code.
func NewUnauthorizedErrorWithCode(message string, code string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message, true, &code)
}

// NewForbiddenError is returned when the caller is known but not allowed.
func NewForbiddenError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, override, nil)
}

// NewForbiddenErrorWithCode is NewForbiddenError with a specific code.
func NewForbiddenErrorWithCode(message string, code string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, true, &code)
}

func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message, override, code)
	err.Errors = errors
	err.Action = action
	return err
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override, code)
}

func NewConflictError(message string, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, true, code)
}

func NewRequestEntityTooLargeError(message string) *HTTPError {
	code := CodeFileTooLarge
	return newHTTPError(http.StatusRequestEntityTooLarge, message, true, &code)
}

func NewUnsupportedMediaTypeError(message string) *HTTPError {
	code := CodeUnsupportedFileType
	return newHTTPError(http.StatusUnsupportedMediaType, message, true, &code)
}

func NewTooManyRequestsError(message string) *HTTPError {
	code := CodeRateLimited
	return newHTTPError(http.StatusTooManyRequests, message, true, &code)
}

func NewServiceUnavailableError(message string) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message, false, nil)
}

// NewInternalServerError never leaks details to the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

// ValidationError wraps a plain validation error as a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}

// InvalidStatusError reports a status outside the resource's allowed set.
func InvalidStatusError(allowed []string) *HTTPError {
	code := CodeInvalidStatus
	fields := []FieldError{{Field: "status", Error: "must be one of: " + strings.Join(allowed, " ")}}
	return NewBadRequestError("Invalid status", true, &code, fields, nil)
}
