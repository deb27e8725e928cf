package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrInvalid marks validation failures raised outside the struct-tag
// validator, so callers can treat them the same as field errors.
var ErrInvalid = errors.New("validation failed")

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a name into a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
