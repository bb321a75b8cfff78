package http

import (
	"errors"
	"net/http"

	"github.com/tapgate/tapgate/internal/access/service"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/httpx"
	"github.com/tapgate/tapgate/pkg/slogx"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// writeServiceError maps typed service and store errors onto HTTP
// responses. Anything unrecognised is logged and reported as an opaque
// server error so internals never leak to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrCardRequired):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_credentials",
			ErrorDescription: "Invalid email or password",
		})
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_token",
			ErrorDescription: "Token verification failed",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
			Error:            "forbidden",
			ErrorDescription: "Insufficient privileges",
		})
	case errors.Is(err, service.ErrSelfDelete):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "self_delete",
			ErrorDescription: "You cannot delete your own account",
		})
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "Resource not found",
		})
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "already_exists",
			ErrorDescription: "Resource already exists",
		})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Internal server error",
		})
	}
}
