// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
)

// Handler implements the HTTP layer for analytics.
type Handler struct {
	service         *Service
	defaultLanguage string
}

// NewHandler constructs a new analytics [Handler].
func NewHandler(service *Service, defaultLanguage string) *Handler {
	return &Handler{service: service, defaultLanguage: defaultLanguage}
}

// Routes returns the router mounted at /analytics.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAuth).Get("/me", handler.me)
	return router
}

// AdminRoutes returns the router mounted at /admin/analytics. Role checks belong to the caller.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/overview", handler.overview)
	return router
}

// GET /admin/analytics/overview.
func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.service.Overview(request.Context(), requestutil.Language(request, handler.defaultLanguage))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}

// GET /analytics/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
