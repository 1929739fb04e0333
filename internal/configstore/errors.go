package configstore

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

var (
	// ErrInvalidParameter is returned for a zero, closed or foreign handle.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrObjectNotFound is returned when a named value is absent.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnsupportedKind is returned when a value exists but is not of the
	// requested kind, or an array holds an element of another kind.
	ErrUnsupportedKind = errors.New("unsupported kind")

	// ErrAccessDenied is returned when a configuration file or directory
	// cannot be checked, created or read.
	ErrAccessDenied = errors.New("access denied")

	// ErrInternalResolution is returned when the configuration directory
	// cannot be determined.
	ErrInternalResolution = errors.New("configuration directory unresolved")

	// ErrPersistFailed is returned when a document cannot be written back to
	// its file.
	ErrPersistFailed = errors.New("persisting configuration failed")
)

// Status is the result code reported across the host boundary.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidParameter
	StatusObjectNotFound
	StatusUnsupportedKind
	StatusAccessDenied
	StatusInternalError
	StatusPersistFailed
)

var statusNames = [...]string{
	StatusSuccess:          "success",
	StatusInvalidParameter: "invalid_parameter",
	StatusObjectNotFound:   "object_not_found",
	StatusUnsupportedKind:  "unsupported_kind",
	StatusAccessDenied:     "access_denied",
	StatusInternalError:    "internal_error",
	StatusPersistFailed:    "persist_failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// StatusOf maps an error returned by this package to its Status. Errors from
// elsewhere map to StatusInternalError.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrInvalidParameter):
		return StatusInvalidParameter
	case errors.Is(err, ErrObjectNotFound):
		return StatusObjectNotFound
	case errors.Is(err, ErrUnsupportedKind):
		return StatusUnsupportedKind
	case errors.Is(err, ErrAccessDenied):
		return StatusAccessDenied
	case errors.Is(err, ErrPersistFailed):
		return StatusPersistFailed
	default:
		return StatusInternalError
	}
}

// failure tags cause with one of the sentinel kinds above and attaches
// structured context. errors.Is matches both kind and cause.
func failure(kind, cause error, kv ...any) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return oops.
		In("configstore").
		Code(StatusOf(kind).String()).
		With(kv...).
		Wrap(err)
}
