package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwtx: empty signing secret")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Signer mints signed session tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a session token and returns the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Signer signs session tokens with HMAC-SHA256 over a single shared
// secret. The secret is process-wide configuration loaded once at startup.
type HS256Signer struct {
	secret []byte
}

// NewHS256Signer returns a signer, or ErrNoSecret if the secret is empty.
// A missing secret is a deployment mistake and the process must refuse to
// start rather than issue unverifiable tokens.
func NewHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// HS256Verifier verifies HS256 session tokens against the same shared
// secret used for signing.
type HS256Verifier struct {
	secret []byte
}

func NewHS256Verifier(secret []byte) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256Verifier{secret: secret}, nil
}

// Verify parses and validates a token. Only HS256 is accepted; tokens
// claiming any other algorithm are rejected outright (alg confusion).
// Signature and expiry are checked by the parser, then the fixed claim
// shape is enforced.
func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.validateRequired(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	default:
		return ErrMalformed
	}
}
