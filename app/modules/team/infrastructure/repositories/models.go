package teamdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Team is the database model for a registered team and its roster.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement"`
	TeamName  string    `bun:"team_name,notnull,unique"`
	Players   []string  `bun:"players,array"`
	TeamColor *string   `bun:"team_color"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
