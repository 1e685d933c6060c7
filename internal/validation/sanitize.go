package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips every HTML tag and trims surrounding whitespace.
// Entities are decoded before sanitizing so encoded markup is stripped too.
// bluemonday escapes the remaining text, which is unescaped again since
// responses are JSON, not HTML.
func SanitizeText(input string) string {
	clean := strictPolicy.Sanitize(html.UnescapeString(input))
	return strings.TrimSpace(html.UnescapeString(clean))
}

// SanitizeOptional applies SanitizeText to an optional field.
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	clean := SanitizeText(*input)
	if clean == "" {
		return nil
	}
	return &clean
}
