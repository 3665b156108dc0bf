// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/api"
	"github.com/taibuivan/mangashelf/internal/core/analytics"
	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/core/collection"
	"github.com/taibuivan/mangashelf/internal/core/discover"
	"github.com/taibuivan/mangashelf/internal/core/library"
	"github.com/taibuivan/mangashelf/internal/core/playlist"
	"github.com/taibuivan/mangashelf/internal/core/review"
	"github.com/taibuivan/mangashelf/internal/core/wallpaper"
	"github.com/taibuivan/mangashelf/internal/platform/cache"
	"github.com/taibuivan/mangashelf/internal/platform/config"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
	"github.com/taibuivan/mangashelf/internal/users/account"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// staticVerifier accepts two fixed tokens.
type staticVerifier struct{}

func (staticVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "admin-token":
		return &sec.AuthClaims{UserID: "admin-1", Role: sec.RoleAdmin}, nil
	case "member-token":
		return &sec.AuthClaims{UserID: "member-1", Role: sec.RoleMember}, nil
	}
	return nil, errors.New("invalid token")
}

// newRouter composes every handler. Repositories are nil because the routes
// exercised here are answered by middleware before reaching a store.
func newRouter(t *testing.T, deps api.HealthDependencies) chi.Router {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	memory := cache.NewMemory()

	handlers := api.Handlers{
		Health:     api.NewHealthHandler(deps, logger),
		Catalog:    catalog.NewHandler(catalog.NewService(nil, memory, time.Minute, logger), "pt-BR"),
		Discover:   discover.NewHandler(discover.NewService(nil, nil, logger), "pt-BR"),
		Library:    library.NewHandler(library.NewService(nil, nil, logger), "pt-BR"),
		Collection: collection.NewHandler(collection.NewService(nil, nil, logger), "pt-BR"),
		Review:     review.NewHandler(review.NewService(nil, nil, logger)),
		Playlist:   playlist.NewHandler(playlist.NewService(nil, logger)),
		Wallpaper:  wallpaper.NewHandler(wallpaper.NewService(nil, nil, nil, logger)),
		Analytics:  analytics.NewHandler(analytics.NewService(nil, memory, time.Minute, logger), "pt-BR"),
		Account:    account.NewHandler(account.NewService(nil, logger)),
	}

	return api.NewRouter(ctx, &config.Config{Environment: "development"}, logger, staticVerifier{}, handlers)
}

func serve(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHealthProbes covers liveness, readiness and ping with a failing cache.
*/
func TestHealthProbes(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{Database: pinger{}, Cache: pinger{err: errors.New("redis down")}})

	live := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, live.Code)
	assert.NotEmpty(t, live.Header().Get(constants.HeaderXRequestID))

	ready := serve(router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	assert.Contains(t, ready.Body.String(), `"degraded"`)
	assert.Contains(t, ready.Body.String(), `"redis down"`)

	ping := serve(router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, ping.Code)
	assert.JSONEq(t, `{"status":"ok"}`, ping.Body.String())
}

/*
TestPing_DatabaseDown verifies ping reports 503 when postgres fails.
*/
func TestPing_DatabaseDown(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{Database: pinger{err: errors.New("refused")}})

	ping := serve(router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusServiceUnavailable, ping.Code)
	assert.JSONEq(t, `{"status":"error"}`, ping.Body.String())
}

/*
TestAccessControl verifies the auth and admin gates on mounted routes.
*/
func TestAccessControl(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"feed anonymous", http.MethodGet, "/discover/feed", "", http.StatusUnauthorized},
		{"library anonymous", http.MethodGet, "/library/favorite", "", http.StatusUnauthorized},
		{"me anonymous", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"invalid token", http.MethodGet, "/health", "forged", http.StatusUnauthorized},
		{"admin anonymous", http.MethodGet, "/admin/analytics/overview", "", http.StatusUnauthorized},
		{"admin as member", http.MethodDelete, "/admin/wallpapers/w-1", "member-token", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/nowhere", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}

	recorder := serve(router, http.MethodGet, "/discover/ia", "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"Não autenticado."`)
}

/*
TestAdminUploadRequiresMultipart verifies an admin passes the gate and reaches
the upload handler, which rejects a body without a file.
*/
func TestAdminUploadRequiresMultipart(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	recorder := serve(router, http.MethodPost, "/admin/wallpapers/w-1/images", "admin-token")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
