package store

import (
	"context"
	"errors"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	Cards() Cards
	AccessLogs() AccessLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. audit insert + card timestamp update).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login; email is unique.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes name, email, password_hash, role and status and
	// bumps updated_at. Returns ErrAlreadyExists on email collision.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to cards; access log rows keep a NULL user_id
	// (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users ordered by name, each with its card
	// count and last recorded access time.
	ListUsers(ctx context.Context) ([]domain.UserOverview, error)

	// IsEmpty returns true if there are no users (bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Cards interface {
	// GetCardWithOwner joins a card with its owning user by card UID.
	// This is the single read the decision engine performs.
	GetCardWithOwner(ctx context.Context, cardUID string) (domain.CardWithOwner, error)

	// GetCardByID returns a card by its row id.
	GetCardByID(ctx context.Context, id string) (domain.Card, error)

	// ListCardsByUser returns a user's cards, newest registration first.
	ListCardsByUser(ctx context.Context, userID string) ([]domain.Card, error)

	// CreateCard registers a card. Returns ErrAlreadyExists when the card
	// UID is taken.
	CreateCard(ctx context.Context, c domain.Card) error

	// UpdateCard writes card_uid, is_active and notes.
	UpdateCard(ctx context.Context, c domain.Card) error

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, id string) error

	// TouchCardLastUsed sets last_used_at for a granted presentation.
	TouchCardLastUsed(ctx context.Context, cardUID string, at time.Time) error
}

// AccessLogFilter narrows the audit listing. Zero values mean "no filter".
type AccessLogFilter struct {
	UserID  string
	CardUID string
	Granted *bool
	Since   *time.Time
	Until   *time.Time

	// Page is 1-based; Limit is rows per page.
	Page  int
	Limit int
}

type AccessLogs interface {
	// InsertAccessLog appends one audit row. The ledger is append-only:
	// there is no update or delete.
	InsertAccessLog(ctx context.Context, e domain.AccessLogEntry) error

	// ListAccessLogs returns a page of audit rows (newest first) joined
	// with user name/email, plus the total row count for the filter.
	ListAccessLogs(ctx context.Context, f AccessLogFilter) ([]domain.AccessLogRecord, int, error)
}
