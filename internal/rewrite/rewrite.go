// Package rewrite turns extracted document text into a short first-person
// cat-narrator story via an external text-completion service.
package rewrite

import (
	"context"
	"fmt"
)

// Client abstracts the completion provider.
type Client interface {
	// Generate returns the rewritten story for the given document text.
	Generate(ctx context.Context, input Input) (string, error)
	// IsAvailable issues a minimal completion probe and reports success. It
	// is for operational tooling only and must not run inside request or job
	// paths; the probe costs a real completion call.
	IsAvailable(ctx context.Context) bool
}

// Input captures what the generator needs for one rewrite.
type Input struct {
	DocumentID string
	Text       string
}

// ErrorKind tags the generation failure taxonomy.
type ErrorKind string

const (
	KindEmptyInput         ErrorKind = "empty_input"
	KindTransportFault     ErrorKind = "transport_fault"
	KindEmptyResponse      ErrorKind = "empty_response"
	KindDegenerateResponse ErrorKind = "degenerate_response"
)

// Error is a typed generation failure.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// IsKind reports whether err is a generation Error with the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ee, ok := err.(*Error)
	return ok && ee.Kind == kind
}
