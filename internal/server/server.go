package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/MineClicker_Go/internal/account"
	"github.com/osse101/MineClicker_Go/internal/admin"
	"github.com/osse101/MineClicker_Go/internal/casino"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/economy"
	"github.com/osse101/MineClicker_Go/internal/eventlog"
	"github.com/osse101/MineClicker_Go/internal/handler"
	"github.com/osse101/MineClicker_Go/internal/lootbox"
	"github.com/osse101/MineClicker_Go/internal/market"
	"github.com/osse101/MineClicker_Go/internal/metrics"
	"github.com/osse101/MineClicker_Go/internal/middleware"
	"github.com/osse101/MineClicker_Go/internal/session"
	"github.com/osse101/MineClicker_Go/internal/sse"
)

// Options holds the transport settings of the HTTP server
type Options struct {
	Port           int
	Version        string
	TrustedProxies []string
	Detector       DetectorConfig
	Timings        handler.Timings
}

// Deps holds the services the routes delegate to
type Deps struct {
	Store    handler.Pinger
	Tokens   middleware.TokenParser
	Sessions middleware.StateChecker
	Hub      *sse.Hub

	Accounts account.Service
	Economy  economy.Service
	Casino   casino.Service
	Lootbox  lootbox.Service
	Market   market.Service
	Admin    admin.Service
	EventLog eventlog.Service
}

type Server struct {
	httpServer *http.Server
	detector   *SuspiciousActivityDetector
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	detector := NewSuspiciousActivityDetector(opts.Detector)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           newRouter(opts, deps, detector),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		detector: detector,
	}
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func newRouter(opts Options, deps Deps, detector *SuspiciousActivityDetector) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	authenticate := middleware.Authenticate(deps.Tokens, func(req *http.Request) {
		detector.RecordFailedAuth(extractIP(req, opts.TrustedProxies))
	})
	inGame := middleware.RequireSession(deps.Sessions, domain.SessionInGame)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", handler.HandleCatalog(opts.Timings))

		r.Post("/auth/register", handler.HandleRegister(deps.Accounts))
		r.Post("/auth/login", handler.HandleLogin(deps.Accounts))
		r.Post("/admin/login", handler.HandleAdminLogin(deps.Admin))

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/auth/logout", handler.HandleLogout(deps.Accounts))
			r.Post("/auth/start", handler.HandleStartGame(deps.Accounts))
			r.Get("/account", handler.HandleGetProfile(deps.Accounts))
			r.Put("/account/name", handler.HandleRename(deps.Accounts))
			r.Get("/events", sse.Handler(deps.Hub, func(req *http.Request) string {
				return middleware.GetIdentity(req.Context())
			}))

			r.Group(func(r chi.Router) {
				r.Use(inGame)

				r.Post("/game/click", handler.HandleClick(deps.Economy))
				r.Post("/game/purchase", handler.HandlePurchase(deps.Economy))
				r.Get("/game/purchase/{itemID}", handler.HandleCanPurchase(deps.Economy))
				r.Post("/game/sell-all", handler.HandleSellAll(deps.Economy))

				r.Route("/cases", func(r chi.Router) {
					r.Post("/buy", handler.HandleBuyCasePack(deps.Economy))
					r.Post("/premium/buy", handler.HandleBuyPremiumCase(deps.Economy))
					r.Post("/open", handler.HandleOpenCase(deps.Lootbox))
				})

				r.Route("/casino", func(r chi.Router) {
					r.Post("/wager", handler.HandleWager(deps.Casino))
					r.Get("/tiers", handler.HandleBetTiers(deps.Casino))
				})

				r.Route("/market", func(r chi.Router) {
					r.Get("/", handler.HandleListings(deps.Market))
					r.Post("/", handler.HandleListItem(deps.Market))
					r.Post("/{listingID}/buy", handler.HandleBuyListing(deps.Market))
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(session.RoleAdmin))

				r.Post("/admin/grant", handler.HandleAdminGrant(deps.Admin))
				r.Get("/admin/accounts", handler.HandleAdminAccounts(deps.Admin))
				r.Get("/admin/events", handler.HandleAdminEvents(deps.EventLog))
			})
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully. Open SSE streams end when their request
// contexts are cancelled by Shutdown's deadline.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

