package statsservice

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Service derives point-in-time player snapshots from the stat event log.
// The log is the single source of truth; nothing here caches a derived
// aggregate past a single call.
type Service interface {
	// GetPlayerStats reads the match's log and aggregates it for one
	// player. set 0 aggregates across all sets. A log read failure
	// propagates, never an empty snapshot.
	GetPlayerStats(ctx context.Context, matchID sharedtypes.MatchID, playerID sharedtypes.PlayerID, set sharedtypes.SetNumber) (sharedtypes.PlayerStats, error)
	// RenderPlayerChart renders a PNG bar chart of a player's counters.
	RenderPlayerChart(ctx context.Context, matchID sharedtypes.MatchID, playerID sharedtypes.PlayerID, set sharedtypes.SetNumber) ([]byte, error)
}
