package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/internal/access/service"
	"github.com/tapgate/tapgate/internal/access/store"
	"github.com/tapgate/tapgate/pkg/httpx"
	"github.com/tapgate/tapgate/pkg/jwtx"
	"github.com/tapgate/tapgate/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	AuthService   *service.AuthService
	AccessService *service.AccessService
	UserService   *service.UserService
	CardService   *service.CardService
	LogService    *service.LogService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccess()
	r.registerUsers()
	r.registerLogs()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /api/auth/login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAccess() {
	// POST /api/access/verify - unauthenticated reader endpoint, highest
	// rate limit profile since readers scan continuously
	verifyHandler := &VerifyHandler{AccessService: r.AccessService}
	r.Mux.Handle("POST /api/access/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerUsers() {
	usersHandler := &UsersHandler{UserService: r.UserService}
	cardsHandler := &CardsHandler{CardService: r.CardService}

	adminOnly := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	// Updates only need a valid token: the handler lets non-admins touch
	// their own profile and nothing else.
	authed := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/users", adminOnly(usersHandler.HandleList))
	r.Mux.Handle("POST /api/users", adminOnly(usersHandler.HandleCreate))
	r.Mux.Handle("GET /api/users/{id}", adminOnly(usersHandler.HandleGet))
	r.Mux.Handle("PUT /api/users/{id}", authed(usersHandler.HandleUpdate))
	r.Mux.Handle("DELETE /api/users/{id}", adminOnly(usersHandler.HandleDelete))

	r.Mux.Handle("GET /api/users/{id}/cards", adminOnly(cardsHandler.HandleList))
	r.Mux.Handle("POST /api/users/{id}/cards", adminOnly(cardsHandler.HandleCreate))
	r.Mux.Handle("PUT /api/users/{id}/cards/{cardId}", adminOnly(cardsHandler.HandleUpdate))
	r.Mux.Handle("DELETE /api/users/{id}/cards/{cardId}", adminOnly(cardsHandler.HandleDelete))
}

func (r *Router) registerLogs() {
	logsHandler := &LogsHandler{LogService: r.LogService}

	// GET /api/logs - admin read operation, lenient limit since the
	// dashboard polls it
	r.Mux.Handle("GET /api/logs",
		httpx.Chain(http.HandlerFunc(logsHandler.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
