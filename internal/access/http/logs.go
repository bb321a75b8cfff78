package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tapgate/tapgate/internal/access/service"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/httpx"
)

// LogsHandler serves the paginated audit ledger.
type LogsHandler struct {
	LogService *service.LogService
}

// HandleList handles GET /api/logs. Filters come from query parameters:
// user_id, card_uid, granted (true/false), from, to (RFC 3339),
// page and limit.
func (h *LogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.AccessLogFilter{
		UserID:  q.Get("user_id"),
		CardUID: q.Get("card_uid"),
	}
	if v := q.Get("granted"); v != "" {
		granted, err := strconv.ParseBool(v)
		if err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "granted must be true or false",
			})
			return
		}
		f.Granted = &granted
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "from must be an RFC 3339 timestamp",
			})
			return
		}
		f.Since = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "to must be an RFC 3339 timestamp",
			})
			return
		}
		f.Until = &ts
	}

	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	page, err := h.LogService.ListAccessLogs(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}
