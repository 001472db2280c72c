package matchservice

import "errors"

// ErrInvalidTransition is returned for a status change the state machine
// does not allow.
var ErrInvalidTransition = errors.New("invalid match status transition")

// ErrMatchLocked is returned when a mutation targets a completed match
// outside the unlock flow.
var ErrMatchLocked = errors.New("match is completed and locked for edits")

// ErrInvalidCredentials is returned when an unlock attempt fails
// verification. No state change or audit record accompanies it.
var ErrInvalidCredentials = errors.New("invalid admin credentials")

// ErrInvalidScore is returned for negative scores or a current set below 1.
var ErrInvalidScore = errors.New("scores must be non-negative and current set >= 1")
