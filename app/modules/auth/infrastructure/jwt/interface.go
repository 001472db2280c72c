package authjwt

import "time"

// Claims is the decoded admin session token.
type Claims struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Provider signs and validates admin session tokens.
type Provider interface {
	GenerateToken(username string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}
