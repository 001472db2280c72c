package matchservice

import (
	"context"
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Service is the match lifecycle contract, including the lock state
// machine and the admin-gated unlock.
type Service interface {
	// CreateMatch stores a new scheduled match and queues its activation
	// at start time.
	CreateMatch(ctx context.Context, match *sharedtypes.Match) error
	GetMatch(ctx context.Context, id sharedtypes.MatchID) (*sharedtypes.Match, error)
	ListMatches(ctx context.Context) ([]sharedtypes.Match, error)
	// StartMatch moves scheduled → active.
	StartMatch(ctx context.Context, id sharedtypes.MatchID) error
	// FinalizeMatch moves active → completed, locking the match.
	FinalizeMatch(ctx context.Context, id sharedtypes.MatchID) error
	// UnlockMatch moves completed → active after verifying admin
	// credentials, recording an audit row. Invalid credentials change
	// nothing.
	UnlockMatch(ctx context.Context, id sharedtypes.MatchID, username, password string) error
	// UpdateScore mutates the live score; rejected while completed.
	UpdateScore(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error
	ListUnlockAudits(ctx context.Context, id sharedtypes.MatchID) ([]sharedtypes.UnlockAudit, error)
}

// CredentialVerifier checks admin credentials. The auth module satisfies
// this.
type CredentialVerifier interface {
	VerifyAdminCredentials(ctx context.Context, username, password string) (*sharedtypes.AdminCredential, error)
}

// ActivationScheduler queues the scheduled → active flip at a match's
// start time. The river-backed queue service satisfies this.
type ActivationScheduler interface {
	ScheduleMatchStart(ctx context.Context, matchID sharedtypes.MatchID, startTime time.Time) error
	CancelMatchJobs(ctx context.Context, matchID sharedtypes.MatchID) error
}
