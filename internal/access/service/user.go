package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/cryptox"
	"github.com/tapgate/tapgate/pkg/idx"
)

var (
	// ErrValidation wraps input problems rejected before touching the store.
	ErrValidation = errors.New("validation_failed")

	// ErrSelfDelete stops an admin removing their own account.
	ErrSelfDelete = errors.New("self_delete")
)

const minPasswordLength = 8

// UserService is the administrative user registry.
type UserService struct {
	Store store.Store
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`

	// CardUID optionally registers an initial card together with the
	// user, in the same transaction.
	CardUID string `json:"card_uid"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

// ListUsers returns all users with card counts and last access times.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserOverview, error) {
	return s.Store.Users().ListUsers(ctx)
}

// GetUserByID fetches a user's public view.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// CreateUser registers a new user and, optionally, their first card.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (domain.PublicUser, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.CardUID = strings.TrimSpace(in.CardUID)

	if in.Name == "" {
		return domain.PublicUser{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !looksLikeEmail(in.Email) {
		return domain.PublicUser{}, fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return domain.PublicUser{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	if in.Role == "" {
		in.Role = domain.RoleStudent
	}
	if in.Status == "" {
		in.Status = domain.StatusActive
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		if in.CardUID == "" {
			return nil
		}
		return tx.Cards().CreateCard(ctx, domain.Card{
			ID:           idx.New().String(),
			UserID:       u.ID,
			CardUID:      in.CardUID,
			Active:       true,
			RegisteredAt: now,
		})
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	return u.Public(), nil
}

// UpdateUser applies a partial update. Role and status changes are only
// honoured for admin principals; other callers may touch their own name,
// email and password (ownership is enforced at the boundary).
func (s *UserService) UpdateUser(ctx context.Context, p domain.Principal, userID string, in UpdateUserInput) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}

	changed := false
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
		changed = true
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.TrimSpace(*in.Email)
		if !looksLikeEmail(email) {
			return domain.PublicUser{}, fmt.Errorf("%w: valid email is required", ErrValidation)
		}
		u.Email = email
		changed = true
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return domain.PublicUser{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := cryptox.HashPassword(*in.Password)
		if err != nil {
			return domain.PublicUser{}, err
		}
		u.PasswordHash = hash
		changed = true
	}
	if p.IsAdmin() {
		if in.Role != nil {
			u.Role = *in.Role
			changed = true
		}
		if in.Status != nil {
			u.Status = *in.Status
			changed = true
		}
	}

	if !changed {
		return domain.PublicUser{}, fmt.Errorf("%w: no updates provided", ErrValidation)
	}

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.PublicUser{}, err
	}

	updated, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return updated.Public(), nil
}

// DeleteUser removes a user; their cards go with them (store cascade) and
// their ledger rows stay behind with a NULL user reference.
func (s *UserService) DeleteUser(ctx context.Context, p domain.Principal, userID string) error {
	if p.UserID == userID {
		return ErrSelfDelete
	}
	return s.Store.Users().DeleteUser(ctx, userID)
}

// looksLikeEmail is deliberately loose; the store's unique index is the
// real gatekeeper, this just catches obvious typos early.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
