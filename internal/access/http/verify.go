package http

import (
	"encoding/json"
	"net/http"

	"github.com/tapgate/tapgate/internal/access/service"
	"github.com/tapgate/tapgate/pkg/httpx"
)

// VerifyHandler handles POST /api/access/verify, the endpoint the door
// readers call. It is unauthenticated: readers hold no credentials and
// every decision is written to the audit ledger regardless.
type VerifyHandler struct {
	AccessService *service.AccessService
}

type verifyRequest struct {
	CardUID string `json:"card_uid"`
}

func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	decision, err := h.AccessService.VerifyAccess(r.Context(), req.CardUID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Denials are still 200s: the reader asked a question and got an
	// answer. Non-2xx is reserved for transport and input problems.
	httpx.WriteJSON(w, http.StatusOK, decision)
}
