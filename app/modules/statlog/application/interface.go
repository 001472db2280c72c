package statlogservice

import (
	"context"

	statlogdb "github.com/Bayview-Volleyball-Club/volley-tracker/app/modules/statlog/infrastructure/repositories"
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Service is the stat event log contract: an append-only, totally ordered
// per-match log of stat events.
type Service interface {
	// Append validates event, rejects it if the match is locked, stores
	// it, and publishes a recorded event. The returned position is the
	// event's place in the match's log.
	Append(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error)
	// Read returns the ordered events of a match, optionally filtered by
	// player and set. Read never consults lock state.
	Read(ctx context.Context, matchID sharedtypes.MatchID, filter statlogdb.EventFilter) ([]sharedtypes.StatEvent, error)
}

// MatchGuard answers whether a match currently accepts new stat events.
// The match module's repository satisfies this.
type MatchGuard interface {
	GetMatchStatus(ctx context.Context, matchID sharedtypes.MatchID) (sharedtypes.MatchStatus, error)
}
