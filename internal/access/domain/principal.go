package domain

import "time"

// Principal is the authenticated identity derived from a valid session
// token. It is never persisted; it exists only for the lifetime of a
// request.
type Principal struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
