package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, status string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         "Alice Example",
		Email:        idx.New().String() + "@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Role:         domain.RoleStudent,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedCard(t *testing.T, s *Store, userID, cardUID string, active bool) domain.Card {
	t.Helper()

	c := domain.Card{
		ID:           idx.New().String(),
		UserID:       userID,
		CardUID:      cardUID,
		Active:       active,
		RegisteredAt: time.Now().UTC(),
	}
	require.NoError(t, s.Cards().CreateCard(context.Background(), c))
	return c
}
