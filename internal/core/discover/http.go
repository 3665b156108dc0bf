// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discover

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// Handler implements the HTTP layer for discovery feeds.
type Handler struct {
	service         *Service
	defaultLanguage string
}

// NewHandler constructs a new discovery [Handler].
func NewHandler(service *Service, defaultLanguage string) *Handler {
	return &Handler{service: service, defaultLanguage: defaultLanguage}
}

// Routes returns the router mounted at /discover.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/recent", handler.feed(handler.service.Recent))
	router.Get("/most-viewed", handler.feed(handler.service.MostViewed))
	router.Get("/most-liked", handler.feed(handler.service.MostLiked))

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Get("/feed", handler.personal(handler.service.Feed))
		authed.Get("/ia", handler.personal(handler.service.Recommended))
		authed.Post("/history/{mangaID}", handler.recordView)
	})

	return router
}

type publicFeed func(context.Context, string, pagination.Params) (*Page, error)
type personalFeed func(context.Context, string, string, pagination.Params) (*Page, error)

/*
GET /discover/recent | /most-viewed | /most-liked.

Request:
  - lg: string
  - page, limit: int
*/
func (handler *Handler) feed(load publicFeed) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		language := requestutil.Language(request, handler.defaultLanguage)
		page, err := load(request.Context(), language, pagination.FromRequest(request, pagination.Standard))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Paginated(writer, page.Data, page.Pagination)
	}
}

// GET /discover/feed | /ia.
func (handler *Handler) personal(load personalFeed) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		language := requestutil.Language(request, handler.defaultLanguage)
		page, err := load(request.Context(), userID, language, pagination.FromRequest(request, pagination.Standard))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Paginated(writer, page.Data, page.Pagination)
	}
}

// POST /discover/history/{mangaID}.
func (handler *Handler) recordView(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := requestutil.Int64Param(request, "mangaID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RecordView(request.Context(), userID, mangaID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
