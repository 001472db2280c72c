package statlogevents

import (
	sharedtypes "github.com/Bayview-Volleyball-Club/volley-tracker/app/shared/types"
)

// Topics carried by the event bus for the stat log module. Remote tracker
// devices publish record requests; the module answers with recorded or
// failed events.
const (
	StatRecordRequested = "statlog.stat.record.requested.v1"
	StatRecorded        = "statlog.stat.recorded.v1"
	StatRecordFailed    = "statlog.stat.record.failed.v1"
)

// StatRecordRequestedPayload asks the stat log to append a single event.
type StatRecordRequestedPayload struct {
	Event sharedtypes.StatEvent `json:"event"`
}

// StatRecordedPayload announces a successfully appended event and its log
// position.
type StatRecordedPayload struct {
	Event    sharedtypes.StatEvent    `json:"event"`
	Position sharedtypes.LogPosition  `json:"position"`
}

// StatRecordFailedPayload reports a rejected append. Reason is one of the
// append error kinds; lost stat actions must be visible to the tracker.
type StatRecordFailedPayload struct {
	MatchID  sharedtypes.MatchID  `json:"match_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	StatName sharedtypes.StatKind `json:"stat_name"`
	Reason   string               `json:"reason"`
}
