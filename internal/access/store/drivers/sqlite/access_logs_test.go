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

func insertLog(t *testing.T, s *Store, userID *string, cardUID string, granted bool, reason *string, at time.Time) {
	t.Helper()

	require.NoError(t, s.AccessLogs().InsertAccessLog(context.Background(), domain.AccessLogEntry{
		ID:            idx.New().String(),
		UserID:        userID,
		CardUID:       cardUID,
		Granted:       granted,
		FailureReason: reason,
		AccessTime:    at,
	}))
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestInsertAccessLogUnknownCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	// Unknown cards are logged with a NULL user reference.
	insertLog(t, s, nil, "GHOST", false, strPtr("Card not registered"), time.Now().UTC())

	recs, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Nil(t, recs[0].UserID)
	require.Nil(t, recs[0].UserName)
	require.False(t, recs[0].Granted)
	require.Equal(t, "Card not registered", *recs[0].FailureReason)
}

func TestListAccessLogsFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	insertLog(t, s, &u.ID, "CARD-1", true, nil, base)
	insertLog(t, s, &u.ID, "CARD-1", false, strPtr("Card is inactive"), base.Add(time.Hour))
	insertLog(t, s, nil, "CARD-2", false, strPtr("Card not registered"), base.Add(2*time.Hour))

	t.Run("by user", func(t *testing.T) {
		recs, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{UserID: u.ID})
		require.NoError(t, err)
		require.Equal(t, 2, total)
		require.Len(t, recs, 2)
		require.Equal(t, u.Name, *recs[0].UserName)
	})

	t.Run("by card", func(t *testing.T) {
		_, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{CardUID: "CARD-2"})
		require.NoError(t, err)
		require.Equal(t, 1, total)
	})

	t.Run("by outcome", func(t *testing.T) {
		recs, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{Granted: boolPtr(true)})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.True(t, recs[0].Granted)
		require.Nil(t, recs[0].FailureReason)
	})

	t.Run("by time window", func(t *testing.T) {
		since := base.Add(30 * time.Minute)
		until := base.Add(90 * time.Minute)
		recs, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{Since: &since, Until: &until})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Equal(t, "Card is inactive", *recs[0].FailureReason)
	})
}

func TestListAccessLogsPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		insertLog(t, s, nil, "CARD-P", false, strPtr("Card not registered"), base.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, page1, 2)

	page3, _, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page3, 1)

	// Newest first.
	require.True(t, page1[0].AccessTime.After(page1[1].AccessTime))
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := seedUser(t, s, domain.StatusActive)
	seedCard(t, s, u.ID, "CARD-TX", true)

	boom := context.Canceled // any sentinel will do
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessLogs().InsertAccessLog(ctx, domain.AccessLogEntry{
			ID:         idx.New().String(),
			UserID:     &u.ID,
			CardUID:    "CARD-TX",
			Granted:    true,
			AccessTime: time.Now().UTC(),
		}); err != nil {
			return err
		}
		if err := tx.Cards().TouchCardLastUsed(ctx, "CARD-TX", time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nothing from the failed transaction is visible.
	_, total, err := s.AccessLogs().ListAccessLogs(ctx, store.AccessLogFilter{})
	require.NoError(t, err)
	require.Zero(t, total)

	co, err := s.Cards().GetCardWithOwner(ctx, "CARD-TX")
	require.NoError(t, err)
	require.True(t, co.CardActive)

	cards, err := s.Cards().ListCardsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, cards[0].LastUsedAt)
}
