package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/idx"
	"github.com/tapgate/tapgate/pkg/slogx"
)

// ErrCardRequired rejects an empty card UID before the store is touched.
var ErrCardRequired = errors.New("card_uid_required")

// Decision reasons reported to the door controller.
const (
	ReasonGranted           = "Access granted"
	ReasonCardNotRegistered = "Card not registered"
	ReasonCardInactive      = "Card is inactive"
)

// AccessService decides whether a presented card gets in, and records
// every decision in the audit ledger.
type AccessService struct {
	Store store.Store
}

// VerifyAccess maps a card UID to a grant/deny decision. The audit row
// insert and, when granted, the card's last_used_at update happen in one
// transaction: either the whole decision is durable or none of it is.
//
// Two simultaneous presentations of the same card each get their own
// ledger row; a duplicate physical scan is intentionally logged twice.
func (s *AccessService) VerifyAccess(ctx context.Context, cardUID string) (domain.Decision, error) {
	cardUID = strings.TrimSpace(cardUID)
	if cardUID == "" {
		return domain.Decision{}, ErrCardRequired
	}

	now := time.Now().UTC()
	decision := domain.Decision{Timestamp: now}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		co, err := tx.Cards().GetCardWithOwner(ctx, cardUID)

		var (
			userID  *string
			granted bool
			reason  string
		)

		// First matching rule wins; the order decides the reported reason.
		switch {
		case errors.Is(err, store.ErrNotFound):
			reason = ReasonCardNotRegistered
		case err != nil:
			return err
		case !co.CardActive:
			reason = ReasonCardInactive
			userID = &co.UserID
		case co.UserStatus != domain.StatusActive:
			reason = "User account is " + co.UserStatus
			userID = &co.UserID
		default:
			granted = true
			userID = &co.UserID
		}

		entry := domain.AccessLogEntry{
			ID:         idx.New().String(),
			UserID:     userID,
			CardUID:    cardUID,
			Granted:    granted,
			AccessTime: now,
		}
		if !granted {
			entry.FailureReason = &reason
		}

		if err := tx.AccessLogs().InsertAccessLog(ctx, entry); err != nil {
			return err
		}

		if granted {
			if err := tx.Cards().TouchCardLastUsed(ctx, cardUID, now); err != nil {
				return err
			}
			decision.Granted = true
			decision.Reason = ReasonGranted
			decision.User = &domain.UserSummary{
				ID:   co.UserID,
				Name: co.UserName,
				Role: co.UserRole,
			}
			return nil
		}

		decision.Reason = reason
		return nil
	})
	if err != nil {
		// The transaction rolled back: no partial ledger row, no partial
		// timestamp. Details stay in the log; the caller gets a generic
		// failure.
		slogx.FromContext(ctx).Error("access verification failed",
			slog.String("card_uid", cardUID),
			slog.Any("error", err),
		)
		return domain.Decision{}, err
	}

	return decision, nil
}
