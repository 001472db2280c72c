package matchevents

import (
	"time"

	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Topics carried by the event bus for the match module.
const (
	MatchStartRequested       = "match.start.requested.v1"
	MatchFinalizeRequested    = "match.finalize.requested.v1"
	MatchScoreUpdateRequested = "match.score.update.requested.v1"
	MatchStarted              = "match.started.v1"
	MatchFinalized            = "match.finalized.v1"
	MatchUnlocked             = "match.unlocked.v1"
	MatchUpdateFailed         = "match.update.failed.v1"
)

// MatchStartRequestedPayload asks to activate a scheduled match. The
// activation queue emits it when a match's start time arrives.
type MatchStartRequestedPayload struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
}

// MatchFinalizeRequestedPayload asks to finalize an active match.
type MatchFinalizeRequestedPayload struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
}

// MatchScoreUpdateRequestedPayload asks to update the live score.
type MatchScoreUpdateRequestedPayload struct {
	MatchID    sharedtypes.MatchID   `json:"match_id"`
	ScoreA     int                   `json:"score_a"`
	ScoreB     int                   `json:"score_b"`
	CurrentSet sharedtypes.SetNumber `json:"current_set"`
}

// MatchStartedPayload announces a scheduled match going active.
type MatchStartedPayload struct {
	MatchID   sharedtypes.MatchID `json:"match_id"`
	StartTime time.Time           `json:"start_time"`
}

// MatchFinalizedPayload announces a match entering the locked state.
type MatchFinalizedPayload struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	ScoreA  int                 `json:"score_a"`
	ScoreB  int                 `json:"score_b"`
}

// MatchUnlockedPayload announces an audited admin unlock.
type MatchUnlockedPayload struct {
	MatchID    sharedtypes.MatchID `json:"match_id"`
	UnlockedBy string              `json:"unlocked_by"`
	Timestamp  time.Time           `json:"timestamp"`
}

// MatchUpdateFailedPayload reports a rejected match mutation.
type MatchUpdateFailedPayload struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
	Reason  string              `json:"reason"`
}
