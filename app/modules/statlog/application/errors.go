package statlogservice

import (
	"errors"
	"fmt"
)

// ErrMatchLocked is returned when an append targets a completed match.
// The tracker should prompt for an admin unlock rather than retry.
var ErrMatchLocked = errors.New("match is completed and locked for edits")

// ErrStorageUnavailable wraps transient storage failures; callers may
// retry with backoff.
var ErrStorageUnavailable = errors.New("stat log storage unavailable")

// ValidationError reports a malformed stat event. It is never retried
// automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid stat event: %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
