// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Mangashelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect object storage when configured.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/mangashelf/internal/api"
	"github.com/taibuivan/mangashelf/internal/core/analytics"
	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/core/collection"
	"github.com/taibuivan/mangashelf/internal/core/discover"
	"github.com/taibuivan/mangashelf/internal/core/library"
	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/core/playlist"
	"github.com/taibuivan/mangashelf/internal/core/review"
	"github.com/taibuivan/mangashelf/internal/core/wallpaper"
	"github.com/taibuivan/mangashelf/internal/platform/cache"
	"github.com/taibuivan/mangashelf/internal/platform/config"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/migration"
	pgstore "github.com/taibuivan/mangashelf/internal/platform/postgres"
	redisstore "github.com/taibuivan/mangashelf/internal/platform/redis"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
	"github.com/taibuivan/mangashelf/internal/platform/storage"
	"github.com/taibuivan/mangashelf/internal/users/account"
	"github.com/taibuivan/mangashelf/migrations"
)

// feedTimeout bounds a Pinterest RSS fetch.
const feedTimeout = 10 * time.Second

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	if cfg.AutoMigrate {
		must(log, migration.RunUp(cfg.DatabaseURL, migrations.FS, log), "run migrations")
	}

	// ── 6. Object Storage ─────────────────────────────────────────────────
	var objects storage.ObjectStore
	if cfg.StorageEnabled() {
		minio, err := storage.NewMinIO(startupCtx, storage.Options{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.S3PublicURL,
		})
		must(log, err, "connect to object storage")
		objects = minio
	}

	// ── 7. Token Verification ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPubKeyPath, cfg.JWTPrivKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	responses := cache.NewRedis(rdb)
	mangas := manga.NewPostgresRepository(pool)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), responses, cfg.CacheTTL, log)
	discoverService := discover.NewService(discover.NewPostgresRepository(pool), mangas, log)
	libraryService := library.NewService(library.NewPostgresRepository(pool), mangas, log)
	collectionService := collection.NewService(collection.NewPostgresRepository(pool), mangas, log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), mangas, log)
	playlistService := playlist.NewService(playlist.NewPostgresRepository(pool), log)
	wallpaperService := wallpaper.NewService(wallpaper.NewPostgresRepository(pool), objects, wallpaper.NewRSSReader(feedTimeout), log)
	analyticsService := analytics.NewService(analytics.NewPostgresRepository(pool), responses, cfg.CacheTTL, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), log)

	handlers := api.Handlers{
		Health: api.NewHealthHandler(api.HealthDependencies{
			Database: pgstore.Pinger{Pool: pool},
			Cache:    redisstore.Pinger{Client: rdb},
		}, log),
		Catalog:    catalog.NewHandler(catalogService, cfg.DefaultLanguage),
		Discover:   discover.NewHandler(discoverService, cfg.DefaultLanguage),
		Library:    library.NewHandler(libraryService, cfg.DefaultLanguage),
		Collection: collection.NewHandler(collectionService, cfg.DefaultLanguage),
		Review:     review.NewHandler(reviewService),
		Playlist:   playlist.NewHandler(playlistService),
		Wallpaper:  wallpaper.NewHandler(wallpaperService),
		Analytics:  analytics.NewHandler(analyticsService, cfg.DefaultLanguage),
		Account:    account.NewHandler(accountService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "mangashelf"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
