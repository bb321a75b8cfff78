package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, name, email, password_hash, role, status, created_at_ms, updated_at_ms`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO users (id, name, email, password_hash, role, status, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Status,
		timeToMs(u.CreatedAt), timeToMs(u.UpdatedAt),
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx, `
UPDATE users
SET name = ?, email = ?, password_hash = ?, role = ?, status = ?, updated_at_ms = ?
WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Status,
		timeToMs(time.Now()), u.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.UserOverview, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT u.id, u.name, u.email, u.role, u.status, u.created_at_ms, u.updated_at_ms,
       (SELECT COUNT(*) FROM cards c WHERE c.user_id = u.id),
       (SELECT MAX(l.access_time_ms) FROM access_logs l WHERE l.user_id = u.id)
FROM users u
ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserOverview
	for rows.Next() {
		var (
			o          domain.UserOverview
			createdMs  int64
			updatedMs  int64
			lastAccess sql.NullInt64
		)
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Email, &o.Role, &o.Status,
			&createdMs, &updatedMs, &o.CardCount, &lastAccess,
		); err != nil {
			return nil, err
		}
		o.CreatedAt = msToTime(createdMs)
		o.UpdatedAt = msToTime(updatedMs)
		o.LastAccess = nullMsToTimePtr(lastAccess)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		createdMs int64
		updatedMs int64
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&createdMs, &updatedMs,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = msToTime(createdMs)
	u.UpdatedAt = msToTime(updatedMs)
	return u, nil
}

// requireRow maps a zero-row write to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
