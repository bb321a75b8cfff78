package service

import (
	"context"
	"testing"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/cryptox"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateUserDefaultsAndInitialCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	pub, err := svc.CreateUser(ctx, CreateUserInput{
		Name:     "Ivy Chen",
		Email:    "ivy@example.com",
		Password: "long-enough",
		CardUID:  "CARD-IVY",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, pub.Role)
	require.Equal(t, domain.StatusActive, pub.Status)

	cards, err := s.Cards().ListCardsByUser(ctx, pub.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, "CARD-IVY", cards[0].CardUID)
	require.True(t, cards[0].Active)

	// The stored hash verifies against the submitted password.
	u, err := s.Users().GetUserByEmail(ctx, "ivy@example.com")
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword("long-enough", u.PasswordHash))
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	cases := []struct {
		name string
		in   CreateUserInput
	}{
		{"missing name", CreateUserInput{Email: "a@b.c", Password: "long-enough"}},
		{"bad email", CreateUserInput{Name: "A", Email: "not-an-email", Password: "long-enough"}},
		{"short password", CreateUserInput{Name: "A", Email: "a@b.c", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tc.in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	in := CreateUserInput{Name: "Jo", Email: "jo@example.com", Password: "long-enough"}
	_, err := svc.CreateUser(ctx, in)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, in)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateUserDuplicateCardRollsBackUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	_, err := svc.CreateUser(ctx, CreateUserInput{
		Name: "Kim", Email: "kim@example.com", Password: "long-enough", CardUID: "SHARED-UID",
	})
	require.NoError(t, err)

	// Same card UID: the card insert fails and the user insert must not
	// survive on its own.
	_, err = svc.CreateUser(ctx, CreateUserInput{
		Name: "Lee", Email: "lee@example.com", Password: "long-enough", CardUID: "SHARED-UID",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByEmail(ctx, "lee@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateUserRoleChangesNeedAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	u := seedUserWithPassword(t, s, "mia@example.com", "long-enough", domain.RoleStudent, domain.StatusActive)

	self := domain.Principal{UserID: u.ID, Role: domain.RoleStudent}
	admin := domain.Principal{UserID: "someone-else", Role: domain.RoleAdmin}

	// A student changing only their own role has provided no honoured
	// update at all.
	_, err := svc.UpdateUser(ctx, self, u.ID, UpdateUserInput{Role: strPtr(domain.RoleAdmin)})
	require.ErrorIs(t, err, ErrValidation)

	got, err := svc.UpdateUser(ctx, admin, u.ID, UpdateUserInput{
		Role:   strPtr(domain.RoleAdmin),
		Status: strPtr(domain.StatusSuspended),
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, got.Role)
	require.Equal(t, domain.StatusSuspended, got.Status)
}

func TestUpdateUserPartial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	u := seedUserWithPassword(t, s, "nina@example.com", "long-enough", domain.RoleStudent, domain.StatusActive)
	self := domain.Principal{UserID: u.ID, Role: domain.RoleStudent}

	got, err := svc.UpdateUser(ctx, self, u.ID, UpdateUserInput{Name: strPtr("Nina Q")})
	require.NoError(t, err)
	require.Equal(t, "Nina Q", got.Name)
	require.Equal(t, u.Email, got.Email)

	_, err = svc.UpdateUser(ctx, self, u.ID, UpdateUserInput{Password: strPtr("short")})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteUserSelfDeleteRefused(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &UserService{Store: s}

	u := seedUserWithPassword(t, s, "oscar@example.com", "long-enough", domain.RoleAdmin, domain.StatusActive)

	err := svc.DeleteUser(ctx, domain.Principal{UserID: u.ID, Role: domain.RoleAdmin}, u.ID)
	require.ErrorIs(t, err, ErrSelfDelete)

	err = svc.DeleteUser(ctx, domain.Principal{UserID: "other-admin", Role: domain.RoleAdmin}, u.ID)
	require.NoError(t, err)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCardOwnershipEnforced(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &CardService{Store: s}

	owner := seedUserWithPassword(t, s, "pat@example.com", "long-enough", domain.RoleStudent, domain.StatusActive)
	other := seedUserWithPassword(t, s, "quinn@example.com", "long-enough", domain.RoleStudent, domain.StatusActive)
	c := seedCardForUser(t, s, owner.ID, "OWNED-1", true)

	// Addressing a card through the wrong user looks like a missing card.
	_, err := svc.UpdateCard(ctx, other.ID, c.ID, UpdateCardInput{Active: boolPtr(false)})
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, svc.DeleteCard(ctx, other.ID, c.ID), store.ErrNotFound)

	got, err := svc.UpdateCard(ctx, owner.ID, c.ID, UpdateCardInput{Active: boolPtr(false)})
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestListUserCardsUnknownUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	svc := &CardService{Store: s}

	_, err := svc.ListUserCards(ctx, "no-such-user")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAccessLogsPaginationMetadata(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	access := &AccessService{Store: s}
	logs := &LogService{Store: s}

	u := seedUserWithPassword(t, s, "rae@example.com", "long-enough", domain.RoleStudent, domain.StatusActive)
	seedCardForUser(t, s, u.ID, "PAGED", true)

	for i := 0; i < 5; i++ {
		_, err := access.VerifyAccess(ctx, "PAGED")
		require.NoError(t, err)
	}

	page, err := logs.ListAccessLogs(ctx, store.AccessLogFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 5, page.Total)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 2, page.Limit)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 2)

	// Defaults kick in for out-of-range paging inputs.
	page, err = logs.ListAccessLogs(ctx, store.AccessLogFilter{Page: 0, Limit: -3})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, defaultLogPageSize, page.Limit)

	// An empty result page is a JSON array, never null.
	page, err = logs.ListAccessLogs(ctx, store.AccessLogFilter{Page: 99, Limit: 10})
	require.NoError(t, err)
	require.NotNil(t, page.Data)
	require.Empty(t, page.Data)
}
