package statlogdb

import (
	"time"

	"github.com/uptrace/bun"
)

// StatEvent is the stored form of a stat log entry. The bigserial ID
// doubles as the log position within a match.
type StatEvent struct {
	bun.BaseModel `bun:"table:stat_events"`

	ID        int64     `bun:"id,pk,autoincrement"`
	MatchID   int64     `bun:"match_id,notnull"`
	PlayerID  string    `bun:"player_id,notnull"`
	StatName  string    `bun:"stat_name,notnull"`
	Value     int       `bun:"value,notnull"`
	SetNumber int       `bun:"set_number,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
