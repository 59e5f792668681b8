package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/internal/accounts/service"
	"github.com/gymloop/accounts/internal/accounts/store"
	"github.com/gymloop/accounts/pkg/httpx"
	"github.com/gymloop/accounts/pkg/jwtx"
	"github.com/gymloop/accounts/pkg/slogx"

	_ "github.com/gymloop/accounts/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProfileService *service.ProfileService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
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
	r.registerUsers()
	r.registerProfiles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			GymLoop Accounts Service API
//	@version		0.1.0
//	@description	Account management for the GymLoop platform: signup/signin with
//	@description	session tokens, plus admin CRUD over users and profiles with
//	@description	pagination, sorting and filtering.
//	@description
//	@description				Session tokens are EdDSA-signed JWTs verifiable via the JWKS endpoint.
//
//	@contact.name				GymLoop Team
//	@contact.url				https://github.com/gymloop/accounts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Store:       r.store,
	}

	// Credential endpoints get a strict per-IP limit to slow brute force.
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/signin",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService: r.UserService,
		Store:       r.store,
	}

	// All user management is ADMIN-only, rate limited per authenticated user.
	secure := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/users", secure(h.HandleCreate))
	r.Mux.Handle("GET /v1/users", secure(h.HandleList))
	r.Mux.Handle("GET /v1/users/{id}", secure(h.HandleGet))
	r.Mux.Handle("GET /v1/users/username/{username}", secure(h.HandleGetByUsername))
	r.Mux.Handle("PATCH /v1/users/{id}", secure(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/users/{id}", secure(h.HandleDelete))
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{
		ProfileService: r.ProfileService,
		Store:          r.store,
	}

	secure := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(string(domain.RoleAdmin)),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/profiles", secure(h.HandleCreate))
	r.Mux.Handle("GET /v1/profiles", secure(h.HandleList))
	r.Mux.Handle("GET /v1/profiles/{id}", secure(h.HandleGet))
	r.Mux.Handle("GET /v1/profiles/user/{userId}", secure(h.HandleGetByUserID))
	r.Mux.Handle("PATCH /v1/profiles/{id}", secure(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/profiles/{id}", secure(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
