package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/contentdeck/internal/content/service"
	"github.com/aussiebroadwan/contentdeck/internal/content/store"
	"github.com/aussiebroadwan/contentdeck/pkg/httpx"
	"github.com/aussiebroadwan/contentdeck/pkg/jwtx"
	"github.com/aussiebroadwan/contentdeck/pkg/slogx"

	_ "github.com/aussiebroadwan/contentdeck/api/content" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options tunes the router. The zero value is usable in tests.
type Options struct {
	// CORSOrigin is the single browser origin allowed to call the API with
	// credentials. Empty disables CORS.
	CORSOrigin string

	// SecureCookies marks session cookies Secure. On in prod.
	SecureCookies bool

	AuthLimit   httpx.RateLimit
	RemoteLimit httpx.RateLimit
	APILimit    httpx.RateLimit
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	opts         Options

	store            store.Store
	SessionService   *service.SessionService
	ContentService   *service.ContentService
	FilterService    *service.FilterService
	LinkService      *service.LinkService
	LifecycleService *service.LifecycleService
	MetricsJob       *service.MetricsJob
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	opts Options,
) *Router {
	if opts.AuthLimit == (httpx.RateLimit{}) {
		opts.AuthLimit = httpx.AuthLimit
	}
	if opts.RemoteLimit == (httpx.RateLimit{}) {
		opts.RemoteLimit = httpx.RemoteLimit
	}
	if opts.APILimit == (httpx.RateLimit{}) {
		opts.APILimit = httpx.APILimit
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		opts:         opts,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders(),
		httpx.CORS(opts.CORSOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerContents()
	r.registerFilters()
	r.registerReddit()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ContentDeck API
//	@version		0.1.0
//	@description	Saves generated marketing content and manages its life as a Reddit post.
//	@description
//	@description	Sessions are carried in HttpOnly cookies set by the login endpoint. A bearer header is accepted in place of the access cookie.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/contentdeck
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with session authentication and a per-user limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimit) http.Handler {
	return httpx.Chain(h,
		httpx.SessionAuth(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		SessionService: r.SessionService,
		Secure:         r.opts.SecureCookies,
	}

	// login and refresh are unauthenticated, strict per IP
	r.Mux.Handle("POST /api/v1/session/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), httpx.RateLimitByIP(r.opts.AuthLimit)))
	r.Mux.Handle("POST /api/v1/session/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh), httpx.RateLimitByIP(r.opts.AuthLimit)))
	r.Mux.Handle("POST /api/v1/session/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout), httpx.RateLimitByIP(r.opts.AuthLimit)))

	r.Mux.Handle("GET /api/v1/session", r.secured(h.HandleMe, r.opts.APILimit))
	r.Mux.Handle("GET /api/v1/me/tutorial", r.secured(h.HandleTutorialStatus, r.opts.APILimit))
	r.Mux.Handle("POST /api/v1/me/tutorial", r.secured(h.HandleTutorialComplete, r.opts.APILimit))
}

func (r *Router) registerContents() {
	h := &ContentsHandler{ContentService: r.ContentService}

	r.Mux.Handle("POST /api/v1/contents", r.secured(h.HandleCreate, r.opts.APILimit))
	r.Mux.Handle("GET /api/v1/contents", r.secured(h.HandleList, r.opts.APILimit))
	r.Mux.Handle("GET /api/v1/contents/{id}", r.secured(h.HandleGet, r.opts.APILimit))
	r.Mux.Handle("PUT /api/v1/contents/{id}", r.secured(h.HandleUpdate, r.opts.APILimit))
	r.Mux.Handle("DELETE /api/v1/contents/{id}", r.secured(h.HandleDelete, r.opts.APILimit))
	r.Mux.Handle("POST /api/v1/contents/{id}/favourite", r.secured(h.HandleToggleFavourite, r.opts.APILimit))
	r.Mux.Handle("GET /api/v1/favourites", r.secured(h.HandleFavourites, r.opts.APILimit))
}

func (r *Router) registerFilters() {
	h := &FiltersHandler{FilterService: r.FilterService}

	r.Mux.Handle("POST /api/v1/filters", r.secured(h.HandleCreate, r.opts.APILimit))
	r.Mux.Handle("GET /api/v1/filters", r.secured(h.HandleList, r.opts.APILimit))
	r.Mux.Handle("DELETE /api/v1/filters/{id}", r.secured(h.HandleDelete, r.opts.APILimit))
}

func (r *Router) registerReddit() {
	h := &RedditHandler{
		LinkService:      r.LinkService,
		LifecycleService: r.LifecycleService,
		MetricsJob:       r.MetricsJob,
	}

	r.Mux.Handle("GET /api/v1/reddit/auth-url", r.secured(h.HandleAuthURL, r.opts.APILimit))
	r.Mux.Handle("GET /api/v1/reddit/link", r.secured(h.HandleLinkStatus, r.opts.APILimit))

	// everything below reaches Reddit
	r.Mux.Handle("POST /api/v1/reddit/link", r.secured(h.HandleLink, r.opts.RemoteLimit))
	r.Mux.Handle("DELETE /api/v1/reddit/link", r.secured(h.HandleUnlink, r.opts.RemoteLimit))
	r.Mux.Handle("POST /api/v1/contents/{id}/reddit", r.secured(h.HandlePublish, r.opts.RemoteLimit))
	r.Mux.Handle("PUT /api/v1/contents/{id}/reddit", r.secured(h.HandleEdit, r.opts.RemoteLimit))
	r.Mux.Handle("DELETE /api/v1/contents/{id}/reddit", r.secured(h.HandleDelete, r.opts.RemoteLimit))
	r.Mux.Handle("GET /api/v1/contents/{id}/reddit", r.secured(h.HandleFetch, r.opts.RemoteLimit))
	r.Mux.Handle("POST /api/v1/reddit/metrics/sweep", r.secured(h.HandleSweep, r.opts.RemoteLimit))
}

func (r *Router) registerSystem() {
	// monitoring may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.opts.APILimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.opts.APILimit),
		),
	)
}
