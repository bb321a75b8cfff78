package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenTTL is the fixed lifetime of an issued session token. Sessions
// are fully stateless, so a token stays valid for the whole window even if
// the account is disabled after issuance. Keep this short enough that the
// trust window is acceptable.
const SessionTokenTTL = 24 * time.Hour

// Claims is the fixed session-token payload. There are no optional or
// dynamic fields: every session token carries the subject (user id), email,
// role and timing bounds, and verification rejects tokens missing any of
// them.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user.
	Email string `json:"email"`

	// Role is the user's role at issuance time ("admin", "student", ...).
	Role string `json:"role"`
}

// NewSessionClaims builds claims for a freshly authenticated user.
// Expiry is always iat + SessionTokenTTL; callers don't get to choose.
func NewSessionClaims(userID, email, role string, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenTTL)),
		},
		Email: email,
		Role:  role,
	}
}

// validateRequired enforces the fixed claim shape after signature and
// expiry checks have passed.
func (c *Claims) validateRequired() error {
	if c.Subject == "" || c.Email == "" || c.Role == "" {
		return ErrInvalidClaim
	}
	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return ErrInvalidClaim
	}
	return nil
}
