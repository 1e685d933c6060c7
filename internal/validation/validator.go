package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\-']+$`)
	phonePattern      = regexp.MustCompile(`^[0-9\s\-\+\(\)]{10,15}$`)
)

// validate is shared by every payload; validator caches struct metadata,
// so a single instance is both cheaper and safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("first_name") instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return IsPersonName(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})

	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// IsPersonName accepts letters (including Latin-1 accents), spaces,
// hyphens and apostrophes, at least two characters long.
func IsPersonName(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= 2 && personNamePattern.MatchString(s)
}

// IsPhone accepts 10 to 15 digits, spaces and "+-()" characters.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsStrongPassword requires 8+ characters with an upper-case letter, a
// lower-case letter and a digit.
func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}

	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return upper && lower && digit
}
