package statsservice

import (
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// AggregatePolicy configures how counters behave under compensating
// (negative) events.
type AggregatePolicy struct {
	// ClampToZero floors each per-category counter at zero after
	// summation. Totals are computed over the clamped counters.
	ClampToZero bool
}

// Aggregate derives a PlayerStats snapshot from a slice of events. It is a
// pure, order-independent sum: any permutation of the same event multiset
// yields the same result. Events are filtered by playerID and, when set is
// non-zero, by exact set equality. Unknown stat names are skipped so newer
// writers do not break older readers.
func Aggregate(events []sharedtypes.StatEvent, playerID sharedtypes.PlayerID, set sharedtypes.SetNumber, policy AggregatePolicy) sharedtypes.PlayerStats {
	var matchID sharedtypes.MatchID
	if len(events) > 0 {
		matchID = events[0].MatchID
	}
	stats := sharedtypes.NewPlayerStats(matchID, playerID, set)

	for _, event := range events {
		if event.PlayerID != playerID {
			continue
		}
		if set != 0 && event.Set != set {
			continue
		}
		if !event.StatName.IsValid() {
			continue
		}
		stats.Counts[event.StatName] += event.Value
	}

	if policy.ClampToZero {
		for kind, count := range stats.Counts {
			if count < 0 {
				stats.Counts[kind] = 0
			}
		}
	}

	return stats
}

// TotalPoints sums the point-earning categories of stats.
func TotalPoints(stats sharedtypes.PlayerStats) int {
	total := 0
	for _, kind := range sharedtypes.PointKinds {
		total += stats.Counts[kind]
	}
	return total
}

// TotalFaults sums the fault categories of stats.
func TotalFaults(stats sharedtypes.PlayerStats) int {
	total := 0
	for _, kind := range sharedtypes.FaultKinds {
		total += stats.Counts[kind]
	}
	return total
}
