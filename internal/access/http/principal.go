package http

import (
	"net/http"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/pkg/httpx"
	"github.com/tapgate/tapgate/pkg/jwtx"
)

// principalFromRequest rebuilds the caller's identity from the claims
// the authentication middleware stored in the request context.
func principalFromRequest(r *http.Request) (domain.Principal, bool) {
	claims, ok := r.Context().Value(httpx.CtxKeyClaims).(jwtx.Claims)
	if !ok {
		return domain.Principal{}, false
	}
	return domain.Principal{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
