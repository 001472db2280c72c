package matchdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Match is the stored form of a match.
type Match struct {
	bun.BaseModel `bun:"table:matches"`

	ID          int64     `bun:"id,pk,autoincrement"`
	CourtNumber int       `bun:"court_number,notnull"`
	TeamA       int64     `bun:"team_a,notnull"`
	TeamB       int64     `bun:"team_b,notnull"`
	TrackerTeam int64     `bun:"tracker_team,notnull"`
	StartTime   time.Time `bun:"start_time,notnull"`
	ScoreA      int       `bun:"score_a,notnull,default:0"`
	ScoreB      int       `bun:"score_b,notnull,default:0"`
	CurrentSet  int       `bun:"current_set,notnull,default:1"`
	Status      string    `bun:"status,notnull,default:'scheduled'"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// UnlockAudit is the stored record of an admin unlock. Rows are only ever
// inserted.
type UnlockAudit struct {
	bun.BaseModel `bun:"table:match_unlock_audits"`

	ID         int64     `bun:"id,pk,autoincrement"`
	MatchID    int64     `bun:"match_id,notnull"`
	UnlockedBy string    `bun:"unlocked_by,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
