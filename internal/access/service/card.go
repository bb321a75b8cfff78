package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/idx"
)

// CardService manages the cards registered to a user.
type CardService struct {
	Store store.Store
}

type AddCardInput struct {
	CardUID string `json:"card_uid"`
	Active  *bool  `json:"is_active"`
	Notes   string `json:"notes"`
}

type UpdateCardInput struct {
	CardUID *string `json:"card_uid"`
	Active  *bool   `json:"is_active"`
	Notes   *string `json:"notes"`
}

// ListUserCards returns a user's cards, newest registration first.
func (s *CardService) ListUserCards(ctx context.Context, userID string) ([]domain.Card, error) {
	// Distinguish "no cards" from "no such user".
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.Store.Cards().ListCardsByUser(ctx, userID)
}

// AddCard registers a card for a user. New cards default to active.
func (s *CardService) AddCard(ctx context.Context, userID string, in AddCardInput) (domain.Card, error) {
	in.CardUID = strings.TrimSpace(in.CardUID)
	if in.CardUID == "" {
		return domain.Card{}, fmt.Errorf("%w: card_uid is required", ErrValidation)
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return domain.Card{}, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	c := domain.Card{
		ID:           idx.New().String(),
		UserID:       userID,
		CardUID:      in.CardUID,
		Active:       active,
		RegisteredAt: time.Now().UTC(),
		Notes:        in.Notes,
	}
	if err := s.Store.Cards().CreateCard(ctx, c); err != nil {
		return domain.Card{}, err
	}
	return c, nil
}

// UpdateCard applies a partial update to a card owned by userID.
func (s *CardService) UpdateCard(ctx context.Context, userID, cardID string, in UpdateCardInput) (domain.Card, error) {
	c, err := s.Store.Cards().GetCardByID(ctx, cardID)
	if err != nil {
		return domain.Card{}, err
	}
	if c.UserID != userID {
		return domain.Card{}, store.ErrNotFound
	}

	changed := false
	if in.CardUID != nil && strings.TrimSpace(*in.CardUID) != "" {
		c.CardUID = strings.TrimSpace(*in.CardUID)
		changed = true
	}
	if in.Active != nil {
		c.Active = *in.Active
		changed = true
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
		changed = true
	}
	if !changed {
		return domain.Card{}, fmt.Errorf("%w: no updates provided", ErrValidation)
	}

	if err := s.Store.Cards().UpdateCard(ctx, c); err != nil {
		return domain.Card{}, err
	}
	return s.Store.Cards().GetCardByID(ctx, cardID)
}

// DeleteCard removes a card owned by userID.
func (s *CardService) DeleteCard(ctx context.Context, userID, cardID string) error {
	c, err := s.Store.Cards().GetCardByID(ctx, cardID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return store.ErrNotFound
	}
	return s.Store.Cards().DeleteCard(ctx, cardID)
}
