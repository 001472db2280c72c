package maintenance

import "time"

// DowntimeConfig is the club's published maintenance window.
type DowntimeConfig struct {
	Active            bool       `json:"active"`
	Start             *time.Time `json:"start,omitempty"`
	End               *time.Time `json:"end,omitempty"`
	Message           string     `json:"message,omitempty"`
	OverriddenByAdmin bool       `json:"overridden_by_admin,omitempty"`
}

// InWindow reports whether now falls inside the configured window. Both
// bounds are inclusive; an absent Start or End leaves that side
// unbounded.
func (c DowntimeConfig) InWindow(now time.Time) bool {
	if c.Start != nil && now.Before(*c.Start) {
		return false
	}
	if c.End != nil && now.After(*c.End) {
		return false
	}
	return true
}
