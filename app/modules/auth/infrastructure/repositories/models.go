package authdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin is the database model for an admin credential. Only the bcrypt
// hash is stored.
type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:a"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
