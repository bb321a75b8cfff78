package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
)

type accessLogsRepo struct {
	q querier
}

func (r *accessLogsRepo) InsertAccessLog(ctx context.Context, e domain.AccessLogEntry) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO access_logs (id, user_id, card_uid, access_granted, failure_reason, access_time_ms)
VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, mapOptionalString(e.UserID), e.CardUID,
		boolToInt(e.Granted), mapOptionalString(e.FailureReason),
		timeToMs(e.AccessTime),
	)
	return err
}

func (r *accessLogsRepo) ListAccessLogs(ctx context.Context, f store.AccessLogFilter) ([]domain.AccessLogRecord, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		conds = append(conds, "l.user_id = ?")
		args = append(args, f.UserID)
	}
	if f.CardUID != "" {
		conds = append(conds, "l.card_uid = ?")
		args = append(args, f.CardUID)
	}
	if f.Granted != nil {
		conds = append(conds, "l.access_granted = ?")
		args = append(args, boolToInt(*f.Granted))
	}
	if f.Since != nil {
		conds = append(conds, "l.access_time_ms >= ?")
		args = append(args, timeToMs(*f.Since))
	}
	if f.Until != nil {
		conds = append(conds, "l.access_time_ms <= ?")
		args = append(args, timeToMs(*f.Until))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM access_logs l "+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	rows, err := r.q.QueryContext(ctx, `
SELECT l.id, l.user_id, l.card_uid, l.access_granted, l.failure_reason, l.access_time_ms,
       u.name, u.email
FROM access_logs l
LEFT JOIN users u ON u.id = l.user_id
`+where+`
ORDER BY l.access_time_ms DESC, l.id DESC
LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.AccessLogRecord
	for rows.Next() {
		var (
			rec       domain.AccessLogRecord
			userID    sql.NullString
			granted   int
			reason    sql.NullString
			timeMs    int64
			userName  sql.NullString
			userEmail sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &userID, &rec.CardUID, &granted, &reason, &timeMs,
			&userName, &userEmail,
		); err != nil {
			return nil, 0, err
		}
		rec.UserID = mapNullStringPtr(userID)
		rec.Granted = granted != 0
		rec.FailureReason = mapNullStringPtr(reason)
		rec.AccessTime = msToTime(timeMs)
		rec.UserName = mapNullStringPtr(userName)
		rec.UserEmail = mapNullStringPtr(userEmail)
		out = append(out, rec)
	}
	return out, total, rows.Err()
}
