package sharedtypes

import "time"

// MatchID identifies a match.
type MatchID int64

// PlayerID identifies a player on a roster.
type PlayerID string

// TeamID identifies a team.
type TeamID int64

// SetNumber identifies a set within a match. Sets are 1-based; 0 means
// "all sets" in query contexts.
type SetNumber int

// LogPosition is the position of an event in a match's append-only log.
// Positions are strictly increasing per match.
type LogPosition int64

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchActive    MatchStatus = "active"
	MatchCompleted MatchStatus = "completed"
)

// StatKind is one of the wire-stable stat categories attached to a StatEvent.
type StatKind string

const (
	StatAces          StatKind = "aces"
	StatServeErrors   StatKind = "serveErrors"
	StatSpikes        StatKind = "spikes"
	StatSpikeErrors   StatKind = "spikeErrors"
	StatDigs          StatKind = "digs"
	StatBlocks        StatKind = "blocks"
	StatNetTouches    StatKind = "netTouches"
	StatTips          StatKind = "tips"
	StatDumps         StatKind = "dumps"
	StatFootFaults    StatKind = "footFaults"
	StatReaches       StatKind = "reaches"
	StatCarries       StatKind = "carries"
	StatPoints        StatKind = "points"
	StatOutOfBounds   StatKind = "outOfBounds"
	StatFaults        StatKind = "faults"
	StatNeutralBlocks StatKind = "neutralBlocks"
)

// StatKinds lists every known stat category in wire order.
var StatKinds = []StatKind{
	StatAces,
	StatServeErrors,
	StatSpikes,
	StatSpikeErrors,
	StatDigs,
	StatBlocks,
	StatNetTouches,
	StatTips,
	StatDumps,
	StatFootFaults,
	StatReaches,
	StatCarries,
	StatPoints,
	StatOutOfBounds,
	StatFaults,
	StatNeutralBlocks,
}

// PointKinds is the subset of stat categories that count toward a player's
// total points.
var PointKinds = []StatKind{
	StatAces,
	StatSpikes,
	StatBlocks,
	StatTips,
	StatDumps,
	StatDigs,
	StatPoints,
}

// FaultKinds is the subset of stat categories that count toward a player's
// total faults. Kinds in neither subset (e.g. neutralBlocks) are
// display-only.
var FaultKinds = []StatKind{
	StatServeErrors,
	StatSpikeErrors,
	StatNetTouches,
	StatFootFaults,
	StatReaches,
	StatCarries,
	StatOutOfBounds,
	StatFaults,
}

var knownStatKinds = func() map[StatKind]struct{} {
	m := make(map[StatKind]struct{}, len(StatKinds))
	for _, k := range StatKinds {
		m[k] = struct{}{}
	}
	return m
}()

// IsValid reports whether k is a known stat category. Consumers of stored
// events must still tolerate unknown kinds from newer writers.
func (k StatKind) IsValid() bool {
	_, ok := knownStatKinds[k]
	return ok
}

func (k StatKind) String() string { return string(k) }

// StatEvent is a single recorded stat action. Events are immutable once
// appended; corrections are modeled as compensating events with a negative
// Value.
type StatEvent struct {
	MatchID   MatchID   `json:"match_id"`
	PlayerID  PlayerID  `json:"player_id"`
	StatName  StatKind  `json:"stat_name"`
	Value     int       `json:"value"`
	Set       SetNumber `json:"set"`
	Timestamp time.Time `json:"timestamp"`
}

// PlayerStats is a fully populated mapping of stat category to signed
// count, tagged with the set it summarizes (0 = all sets).
type PlayerStats struct {
	MatchID  MatchID          `json:"match_id"`
	PlayerID PlayerID         `json:"player_id"`
	Set      SetNumber        `json:"set"`
	Counts   map[StatKind]int `json:"counts"`
}

// NewPlayerStats returns a PlayerStats with every known category zeroed.
func NewPlayerStats(matchID MatchID, playerID PlayerID, set SetNumber) PlayerStats {
	counts := make(map[StatKind]int, len(StatKinds))
	for _, k := range StatKinds {
		counts[k] = 0
	}
	return PlayerStats{
		MatchID:  matchID,
		PlayerID: playerID,
		Set:      set,
		Counts:   counts,
	}
}
