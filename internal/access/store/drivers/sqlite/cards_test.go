package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/idx"

	"github.com/stretchr/testify/require"
)

func TestGetCardWithOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	seedCard(t, s, u.ID, "AA:BB:CC", true)

	co, err := s.Cards().GetCardWithOwner(ctx, "AA:BB:CC")
	require.NoError(t, err)
	require.Equal(t, u.ID, co.UserID)
	require.Equal(t, u.Name, co.UserName)
	require.Equal(t, domain.StatusActive, co.UserStatus)
	require.True(t, co.CardActive)

	_, err = s.Cards().GetCardWithOwner(ctx, "ZZ:ZZ:ZZ")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCardsCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	c := seedCard(t, s, u.ID, "CARD-A", true)

	got, err := s.Cards().GetCardByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "CARD-A", got.CardUID)
	require.Nil(t, got.LastUsedAt)

	got.Active = false
	got.Notes = "left in the lab"
	require.NoError(t, s.Cards().UpdateCard(ctx, got))

	got, err = s.Cards().GetCardByID(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.Equal(t, "left in the lab", got.Notes)

	require.NoError(t, s.Cards().DeleteCard(ctx, c.ID))
	_, err = s.Cards().GetCardByID(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCardsDuplicateUID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	seedCard(t, s, u.ID, "CARD-DUP", true)

	err := s.Cards().CreateCard(ctx, domain.Card{
		ID:           idx.New().String(),
		UserID:       u.ID,
		CardUID:      "CARD-DUP",
		Active:       true,
		RegisteredAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestListCardsByUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	other := seedUser(t, s, domain.StatusActive)
	seedCard(t, s, u.ID, "CARD-1", true)
	seedCard(t, s, u.ID, "CARD-2", true)
	seedCard(t, s, other.ID, "CARD-3", true)

	cards, err := s.Cards().ListCardsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, c := range cards {
		require.Equal(t, u.ID, c.UserID)
	}
}

func TestTouchCardLastUsed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	c := seedCard(t, s, u.ID, "CARD-T", true)

	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.Cards().TouchCardLastUsed(ctx, "CARD-T", at))

	got, err := s.Cards().GetCardByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastUsedAt)
	require.Equal(t, at.UnixMilli(), got.LastUsedAt.UnixMilli())

	err = s.Cards().TouchCardLastUsed(ctx, "NO-SUCH-CARD", at)
	require.ErrorIs(t, err, store.ErrNotFound)
}
