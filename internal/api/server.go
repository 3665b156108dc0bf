// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/mangashelf/internal/core/analytics"
	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/core/collection"
	"github.com/taibuivan/mangashelf/internal/core/discover"
	"github.com/taibuivan/mangashelf/internal/core/library"
	"github.com/taibuivan/mangashelf/internal/core/playlist"
	"github.com/taibuivan/mangashelf/internal/core/review"
	"github.com/taibuivan/mangashelf/internal/core/wallpaper"
	"github.com/taibuivan/mangashelf/internal/platform/config"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
	"github.com/taibuivan/mangashelf/internal/users/account"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// New domains add a field here and one line in [NewRouter].
type Handlers struct {
	// Health serves /health, /ready and /ping.
	Health *HealthHandler

	// Catalog serves search and the category, type and language lookups.
	Catalog *catalog.Handler

	// Discover serves ranked feeds, recommendations and view history.
	Discover *discover.Handler

	// Library tracks per-user reading flags.
	Library *library.Handler

	// Collection manages collections and collaborators.
	Collection *collection.Handler

	// Review manages reviews, votes and rating overviews.
	Review *review.Handler

	Playlist  *playlist.Handler
	Wallpaper *wallpaper.Handler
	Analytics *analytics.Handler

	// Account serves /me and public profiles.
	Account *account.Handler
}

// # Router Composition

/*
NewRouter builds the chi router with the full middleware chain and every route group.

ctx bounds the rate limiter's background sweeper.
*/
func NewRouter(ctx context.Context, cfg middleware.AppConfig, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Handler)
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Health.Liveness)
	r.Get("/ready", h.Health.Readiness)
	r.Get("/ping", h.Health.Ping)

	// # Application API
	h.Catalog.Register(r)
	h.Review.Register(r)
	h.Account.Register(r)

	r.Mount("/discover", h.Discover.Routes())
	r.Mount("/library", h.Library.Routes())
	r.Mount("/collections", h.Collection.Routes())
	r.Mount("/playlists", h.Playlist.Routes())
	r.Mount("/wallpapers", h.Wallpaper.Routes())
	r.Mount("/analytics", h.Analytics.Routes())

	// # Administration
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Mount("/wallpapers", h.Wallpaper.AdminRoutes())
		admin.Mount("/analytics", h.Analytics.AdminRoutes())
	})

	return r
}

// # Server Initialization

// NewServer constructs the router and the [http.Server] listening on cfg.ServerPort.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(ctx, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
