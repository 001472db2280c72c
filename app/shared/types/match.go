package sharedtypes

import "time"

// Match is a scheduled or played match on one court.
type Match struct {
	ID          MatchID     `json:"id"`
	CourtNumber int         `json:"court_number"`
	TeamA       TeamID      `json:"team_a"`
	TeamB       TeamID      `json:"team_b"`
	TrackerTeam TeamID      `json:"tracker_team"`
	StartTime   time.Time   `json:"start_time"`
	ScoreA      int         `json:"score_a"`
	ScoreB      int         `json:"score_b"`
	CurrentSet  SetNumber   `json:"current_set"`
	Status      MatchStatus `json:"status"`
}

// UnlockAudit records an admin unlock of a completed match.
type UnlockAudit struct {
	MatchID    MatchID   `json:"match_id"`
	UnlockedBy string    `json:"unlocked_by"`
	Timestamp  time.Time `json:"timestamp"`
}

// Team is a roster of players. Player IDs are ordered and may repeat
// across teams.
type Team struct {
	ID        TeamID     `json:"id"`
	TeamName  string     `json:"team_name"`
	Players   []PlayerID `json:"players"`
	TeamColor *string    `json:"team_color,omitempty"`
}

// AdminCredential identifies a verified admin.
type AdminCredential struct {
	Username string `json:"username"`
}
