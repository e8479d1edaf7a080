// Package language defines the supported languages, their display strings,
// and the persistence port for the selected language.
package language

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Code identifies a supported language.
type Code string

const (
	English Code = "en"
	Turkish Code = "tr"
)

// Default is used when no language has been selected yet.
const Default = English

// All lists the supported languages in display order.
var All = []Code{English, Turkish}

// Valid reports whether c is a supported language.
func (c Code) Valid() bool {
	switch c {
	case English, Turkish:
		return true
	default:
		return false
	}
}

// Name returns the language's own name for display.
func (c Code) Name() string {
	switch c {
	case English:
		return "English"
	case Turkish:
		return "Türkçe"
	default:
		return string(c)
	}
}

// Next returns the language after c in All, wrapping around.
func (c Code) Next() Code {
	for i, code := range All {
		if code == c {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}

// Parse converts s into a Code. Matching is case-insensitive and ignores
// surrounding whitespace.
func Parse(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported language %q (use en or tr)", s)
	}
	return c, nil
}

// Store persists the selected language.
type Store interface {
	// Language returns the stored language. Implementations return
	// ErrNotSet when nothing has been stored.
	Language(ctx context.Context) (Code, error)
	SetLanguage(ctx context.Context, code Code) error
}

// ErrNotSet is returned by Store implementations when no language is stored.
var ErrNotSet = errors.New("language not set")

// Resolve reads the stored language, falling back to fallback when the slot
// is empty, unreadable, or holds an unsupported code.
func Resolve(ctx context.Context, store Store, fallback Code) Code {
	if !fallback.Valid() {
		fallback = Default
	}
	if store == nil {
		return fallback
	}
	code, err := store.Language(ctx)
	if err != nil || !code.Valid() {
		return fallback
	}
	return code
}
