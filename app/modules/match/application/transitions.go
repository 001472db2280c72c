package matchservice

import (
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// allowedTransitions is the match lock state machine. The completed →
// active edge exists only behind the admin-gated unlock, which is the sole
// way a match becomes editable again.
var allowedTransitions = map[sharedtypes.MatchStatus]map[sharedtypes.MatchStatus]bool{
	sharedtypes.MatchScheduled: {
		sharedtypes.MatchActive: true,
	},
	sharedtypes.MatchActive: {
		sharedtypes.MatchCompleted: true,
	},
	sharedtypes.MatchCompleted: {
		sharedtypes.MatchActive: true,
	},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to sharedtypes.MatchStatus) bool {
	return allowedTransitions[from][to]
}
