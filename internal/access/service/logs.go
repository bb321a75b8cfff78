package service

import (
	"context"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/store"
)

const (
	defaultLogPageSize = 20
	maxLogPageSize     = 100
)

// LogService reads the audit ledger. The ledger itself is append-only;
// this service never mutates it.
type LogService struct {
	Store store.Store
}

// LogPage is one page of audit rows plus pagination metadata.
type LogPage struct {
	Data       []domain.AccessLogRecord `json:"data"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

// ListAccessLogs returns a filtered, paginated view of the ledger,
// newest first.
func (s *LogService) ListAccessLogs(ctx context.Context, f store.AccessLogFilter) (LogPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLogPageSize
	}
	if f.Limit > maxLogPageSize {
		f.Limit = maxLogPageSize
	}

	recs, total, err := s.Store.AccessLogs().ListAccessLogs(ctx, f)
	if err != nil {
		return LogPage{}, err
	}

	totalPages := total / f.Limit
	if total%f.Limit != 0 {
		totalPages++
	}

	if recs == nil {
		recs = []domain.AccessLogRecord{}
	}

	return LogPage{
		Data:       recs,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages,
	}, nil
}
