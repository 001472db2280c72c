package matchdb

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Repository is the persistence contract for matches and unlock audits.
type Repository interface {
	CreateMatch(ctx context.Context, match *sharedtypes.Match) error
	GetMatch(ctx context.Context, id sharedtypes.MatchID) (*sharedtypes.Match, error)
	ListMatches(ctx context.Context) ([]sharedtypes.Match, error)
	// GetMatchStatus is the cheap status probe the stat log consults
	// before every append.
	GetMatchStatus(ctx context.Context, id sharedtypes.MatchID) (sharedtypes.MatchStatus, error)
	// SetMatchStatus transitions a match only when its current status is
	// expected, so concurrent transitions cannot race past each other.
	SetMatchStatus(ctx context.Context, id sharedtypes.MatchID, expected, next sharedtypes.MatchStatus) error
	UpdateScore(ctx context.Context, id sharedtypes.MatchID, scoreA, scoreB int, currentSet sharedtypes.SetNumber) error
	InsertUnlockAudit(ctx context.Context, audit sharedtypes.UnlockAudit) error
	ListUnlockAudits(ctx context.Context, matchID sharedtypes.MatchID) ([]sharedtypes.UnlockAudit, error)
}
