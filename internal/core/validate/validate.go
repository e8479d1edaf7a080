// Package validate provides shared input validation.
package validate

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when a submission has no ingredients.
var ErrEmptyInput = errors.New("ingredients are required")

// Ingredients validates that the ingredient text is non-empty after
// trimming whitespace.
func Ingredients(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyInput
	}
	return nil
}
