package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
	"github.com/aussiebroadwan/readinglog/pkg/jwtx"
	"github.com/aussiebroadwan/readinglog/pkg/slogx"

	_ "github.com/aussiebroadwan/readinglog/api/readinglog" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	db        Pinger
	blacklist Pinger

	Authenticator *service.Authenticator
	Members       *service.MemberService
	Profiles      ProfileFetcher
	Authorize     AuthorizeURLBuilder
	Housekeeping  Sweeper
}

// NewRouter builds a router. blacklist may be nil when the blacklist lives
// in the same database as everything else.
func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	db Pinger,
	blacklist Pinger,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		db:           db,
		blacklist:    blacklist,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		Scope,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOAuth2()
	r.registerMembers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Readinglog Authentication API
//	@version		0.1.0
//	@description	Member authentication for readinglog: OAuth2 provider login, access and refresh tokens, logout.
//	@description
//	@description				Access tokens are short lived JWTs; refresh tokens are single use and rotate on every reissue.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/readinglog
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /reissue - strict rate limit by IP (token minting)
	r.Mux.Handle("POST /api/v1/auth/reissue",
		httpx.Chain(&ReissueHandler{Authenticator: r.Authenticator},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - the token is optional here so a missing one can be
	// reported as missing_token rather than unauthorized
	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(&LogoutHandler{Authenticator: r.Authenticator},
			Authenticate(r.Authenticator, true),
			httpx.RateLimitBySubject(httpx.ModerateLimit, MemberKey),
		),
	)
}

func (r *Router) registerOAuth2() {
	// GET /oauth2/{provider}/authorize - browser redirect, no tokens minted
	r.Mux.Handle("GET /oauth2/{provider}/authorize",
		httpx.Chain(&OAuth2AuthorizeHandler{Providers: r.Authorize},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /oauth2/{provider} - strict rate limit by IP (token minting)
	r.Mux.Handle("GET /oauth2/{provider}",
		httpx.Chain(&OAuth2CallbackHandler{Profiles: r.Profiles, Authenticator: r.Authenticator},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMembers() {
	r.Mux.Handle("GET /api/v1/members/me",
		httpx.Chain(&MeHandler{Members: r.Members},
			Authenticate(r.Authenticator, false),
			httpx.RateLimitBySubject(httpx.ModerateLimit, MemberKey),
			RequireMember,
		),
	)
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("POST /api/v1/admin/housekeeping",
		httpx.Chain(&HousekeepingHandler{Sweeper: r.Housekeeping},
			Authenticate(r.Authenticator, false),
			httpx.RateLimitBySubject(httpx.ModerateLimit, MemberKey),
			RequireAdmin,
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
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.db, r.blacklist, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
