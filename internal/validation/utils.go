package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that know how to validate
// themselves, usually by calling Struct plus any cross-field checks.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule that cannot be expressed as a tag.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors lets Validate() return several custom failures.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path params, query params and the JSON body into
// payload, then runs payload.Validate(). An *errs.HTTPError returned by
// Validate is passed through unchanged.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request payload"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: tagMessage(e),
		})
	}

	return "Validation failed", fieldErrors
}

func tagMessage(err validator.FieldError) string {
	isString := err.Kind() == reflect.String

	switch err.Tag() {
	case "required", "required_with", "required_without":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "personname":
		return "must contain only letters, spaces, hyphens and apostrophes"
	case "phone":
		return "must be a valid phone number"
	case "strongpassword":
		return "must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"
	case "datetime":
		return fmt.Sprintf("must be a date in the format %s", err.Param())
	case "numeric":
		return "must be numeric"
	case "dive":
		return "some items are invalid"
	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", strings.ToLower(err.Field()), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", strings.ToLower(err.Field()), err.Tag())
	}
}
