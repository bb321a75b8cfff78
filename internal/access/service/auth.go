package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/cryptox"
	"github.com/tapgate/tapgate/pkg/jwtx"
	"github.com/tapgate/tapgate/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not be able to tell the two apart (user enumeration).
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidToken covers every token failure mode: malformed, bad
	// signature, expired, missing claim. One class, one response.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrForbidden is a valid principal with an insufficient role.
	ErrForbidden = errors.New("forbidden")
)

// AuthService issues and validates session tokens.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
}

// Session is what a successful login returns.
type Session struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Login verifies the submitted credentials and mints a session token.
// A failed attempt leaves no side effect.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	l := slogx.FromContext(ctx)
	email = strings.TrimSpace(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("email", email))
		return Session{}, ErrInvalidCredentials
	}

	claims := jwtx.NewSessionClaims(u.ID, u.Email, u.Role, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: u.Public()}, nil
}

// ValidateToken checks a bearer token and derives the principal. Fully
// stateless: the store is never consulted, so a user disabled after
// issuance keeps a working token until it expires naturally.
func (s *AuthService) ValidateToken(token string) (domain.Principal, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}

	return domain.Principal{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// RequireRole is a pure role comparison used by administrative endpoints.
func (s *AuthService) RequireRole(p domain.Principal, role string) error {
	if p.Role != role {
		return ErrForbidden
	}
	return nil
}
