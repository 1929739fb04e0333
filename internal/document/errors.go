package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a named value is absent.
	ErrNotFound = errors.New("value not found")

	// ErrKindMismatch is returned when a value exists but has a different kind
	// than the one requested.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrMalformed is returned by Parse for input that is not a JSON object.
	ErrMalformed = errors.New("malformed document")
)

// KindError describes a failed typed read. It matches ErrKindMismatch.
type KindError struct {
	Name  string
	Want  Kind
	Got   Kind
	Index int // element index for array reads, -1 otherwise
}

func (e *KindError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%q[%d]: want %s, got %s", e.Name, e.Index, e.Want, e.Got)
	}
	return fmt.Sprintf("%q: want %s, got %s", e.Name, e.Want, e.Got)
}

func (e *KindError) Unwrap() error {
	return ErrKindMismatch
}
