package statlogdb

import (
	"context"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// EventFilter narrows a log read. Zero values match everything.
type EventFilter struct {
	PlayerID sharedtypes.PlayerID
	Set      sharedtypes.SetNumber
}

// Repository is the persistence contract for the append-only stat event
// log.
type Repository interface {
	// AppendEvent stores event and returns its log position. Appends are
	// serialized per match by the store.
	AppendEvent(ctx context.Context, event sharedtypes.StatEvent) (sharedtypes.LogPosition, error)
	// ReadEvents returns a match's events in append order, filtered.
	ReadEvents(ctx context.Context, matchID sharedtypes.MatchID, filter EventFilter) ([]sharedtypes.StatEvent, error)
	// CountEvents returns the number of events logged for a match.
	CountEvents(ctx context.Context, matchID sharedtypes.MatchID) (int64, error)
}
