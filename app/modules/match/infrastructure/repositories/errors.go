package matchdb

import "errors"

// ErrMatchNotFound is returned when no match exists for an ID.
var ErrMatchNotFound = errors.New("match not found")

// ErrStatusConflict is returned when a guarded status transition finds the
// match in an unexpected state.
var ErrStatusConflict = errors.New("match status changed concurrently")
