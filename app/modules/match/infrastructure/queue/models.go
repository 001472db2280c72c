package matchqueue

import (
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// MatchStartJob is a scheduled activation: when a match's start time
// arrives it publishes a match.start.requested event.
type MatchStartJob struct {
	MatchID sharedtypes.MatchID `json:"match_id"`
}

// Kind returns the job type identifier for River.
func (MatchStartJob) Kind() string { return "match_start" }
