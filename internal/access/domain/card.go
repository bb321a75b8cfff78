package domain

import "time"

// Card is a registered RFID credential. A user may own any number of
// cards; deleting the user cascades to its cards (enforced by the store
// schema, not by the engine).
type Card struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	CardUID      string     `json:"card_uid"`
	Active       bool       `json:"is_active"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	Notes        string     `json:"notes"`
}

// CardWithOwner is the join the decision engine consults: one card and
// the state of its owning user.
type CardWithOwner struct {
	CardID     string
	CardUID    string
	CardActive bool
	UserID     string
	UserName   string
	UserRole   string
	UserStatus string
}
