package http

import (
	"encoding/json"
	"net/http"

	"github.com/tapgate/tapgate/internal/access/service"
	"github.com/tapgate/tapgate/pkg/httpx"
)

// CardsHandler handles card management nested under a user.
type CardsHandler struct {
	CardService *service.CardService
}

// HandleList handles GET /api/users/{id}/cards.
func (h *CardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cards, err := h.CardService.ListUserCards(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

// HandleCreate handles POST /api/users/{id}/cards.
func (h *CardsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.AddCardInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	c, err := h.CardService.AddCard(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// HandleUpdate handles PUT /api/users/{id}/cards/{cardId}.
func (h *CardsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCardInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	c, err := h.CardService.UpdateCard(r.Context(), r.PathValue("id"), r.PathValue("cardId"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// HandleDelete handles DELETE /api/users/{id}/cards/{cardId}.
func (h *CardsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CardService.DeleteCard(r.Context(), r.PathValue("id"), r.PathValue("cardId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
