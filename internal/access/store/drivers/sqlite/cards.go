package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
)

type cardsRepo struct {
	q querier
}

const cardColumns = `id, user_id, card_uid, is_active, registered_at_ms, last_used_at_ms, notes`

func (r *cardsRepo) GetCardWithOwner(ctx context.Context, cardUID string) (domain.CardWithOwner, error) {
	var (
		co     domain.CardWithOwner
		active int
	)
	err := r.q.QueryRowContext(ctx, `
SELECT c.id, c.card_uid, c.is_active, u.id, u.name, u.role, u.status
FROM cards c
JOIN users u ON u.id = c.user_id
WHERE c.card_uid = ?`, cardUID).Scan(
		&co.CardID, &co.CardUID, &active,
		&co.UserID, &co.UserName, &co.UserRole, &co.UserStatus,
	)
	if err != nil {
		return domain.CardWithOwner{}, mapNotFound(err)
	}
	co.CardActive = active != 0
	return co, nil
}

func (r *cardsRepo) GetCardByID(ctx context.Context, id string) (domain.Card, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	return scanCard(row)
}

func (r *cardsRepo) ListCardsByUser(ctx context.Context, userID string) ([]domain.Card, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE user_id = ? ORDER BY registered_at_ms DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Card
	for rows.Next() {
		c, err := scanCardRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *cardsRepo) CreateCard(ctx context.Context, c domain.Card) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO cards (id, user_id, card_uid, is_active, registered_at_ms, notes)
VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.CardUID, boolToInt(c.Active),
		timeToMs(c.RegisteredAt), c.Notes,
	)
	return mapConflict(err)
}

func (r *cardsRepo) UpdateCard(ctx context.Context, c domain.Card) error {
	res, err := r.q.ExecContext(ctx, `
UPDATE cards SET card_uid = ?, is_active = ?, notes = ? WHERE id = ?`,
		c.CardUID, boolToInt(c.Active), c.Notes, c.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *cardsRepo) DeleteCard(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *cardsRepo) TouchCardLastUsed(ctx context.Context, cardUID string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE cards SET last_used_at_ms = ? WHERE card_uid = ?`,
		timeToMs(at), cardUID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanCard(row *sql.Row) (domain.Card, error) {
	var (
		c            domain.Card
		active       int
		registeredMs int64
		lastUsedMs   sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.UserID, &c.CardUID, &active, &registeredMs, &lastUsedMs, &c.Notes)
	if err != nil {
		return domain.Card{}, mapNotFound(err)
	}
	c.Active = active != 0
	c.RegisteredAt = msToTime(registeredMs)
	c.LastUsedAt = nullMsToTimePtr(lastUsedMs)
	return c, nil
}

func scanCardRows(rows *sql.Rows) (domain.Card, error) {
	var (
		c            domain.Card
		active       int
		registeredMs int64
		lastUsedMs   sql.NullInt64
	)
	err := rows.Scan(&c.ID, &c.UserID, &c.CardUID, &active, &registeredMs, &lastUsedMs, &c.Notes)
	if err != nil {
		return domain.Card{}, err
	}
	c.Active = active != 0
	c.RegisteredAt = msToTime(registeredMs)
	c.LastUsedAt = nullMsToTimePtr(lastUsedMs)
	return c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
