package update

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller mistakes.
var (
	ErrProxyTagRequired   = errors.New("--proxy-tag is required")
	ErrInvalidMissingJSON = errors.New("invalid JSON for --missing-json")
)

// UsageError wraps an error caused by invalid command input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// NotFoundError wraps an error raised when an update target lacks the
// entry it is expected to contain.
type NotFoundError struct {
	Err error
}

func (e *NotFoundError) Error() string { return e.Err.Error() }
func (e *NotFoundError) Unwrap() error { return e.Err }

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err stems from invalid command input.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
