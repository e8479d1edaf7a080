// Package generate defines the text generation port and its failure kinds.
package generate

import (
	"context"
	"errors"
	"fmt"
)

// Generator sends a prompt to a text generation service and returns the
// generated text verbatim. Each call is independent: no retries, no caching.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Kind classifies a generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindMissingCredential means no API credential was configured.
	KindMissingCredential
	// KindNetwork means the request could not be sent or the response could
	// not be read.
	KindNetwork
	// KindService means the service answered with an error, rejected the
	// credential, or returned no usable text.
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing credential"
	case KindNetwork:
		return "network"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// Error is returned by Generator implementations for every failure.
type Error struct {
	Kind Kind
	// Status is the HTTP status code for KindService failures, if any.
	Status int
	Err    error
}

func (e *Error) Error() string {
	msg := "generation failed (" + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(", status %d", e.Status)
	}
	msg += ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindUnknown
}

// IsGenerationError reports whether err came from a Generator.
func IsGenerationError(err error) bool {
	var genErr *Error
	return errors.As(err, &genErr)
}
