// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// # Request DTOs

type entryRequest struct {
	MangaID    int64 `json:"mangaId"`
	IsRead     *bool `json:"isRead"`
	IsLiked    *bool `json:"isLiked"`
	IsFollowed *bool `json:"isFollowed"`
	IsComplete *bool `json:"isComplete"`
}

func (r entryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MangaID, validation.Required, validation.Min(int64(1))),
	)
}

func (r entryRequest) changes() Changes {
	return Changes{IsRead: r.IsRead, IsLiked: r.IsLiked, IsFollowed: r.IsFollowed, IsComplete: r.IsComplete}
}

// # Handler Implementation

// Handler implements the HTTP layer for library operations.
type Handler struct {
	service         *Service
	defaultLanguage string
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service, defaultLanguage string) *Handler {
	return &Handler{service: service, defaultLanguage: defaultLanguage}
}

// Routes returns the router mounted at /library. Every route requires a caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.upsert)
	router.Patch("/", handler.update)
	router.Get("/status/{mangaId}", handler.status)
	router.Delete("/{mangaId}", handler.remove)
	router.Get("/{type}", handler.list)
	router.Post("/{type}/toggle/{mangaId}", handler.toggle)

	return router
}

/*
POST /library.

Request (Body):
  - mangaId: int64
  - isRead, isLiked, isFollowed, isComplete: bool (optional)

Response:
  - 200: Entry
*/
func (handler *Handler) upsert(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entryRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Upsert(request.Context(), userID, input.MangaID, input.changes())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// PATCH /library.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input entryRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Update(request.Context(), userID, input.MangaID, input.changes())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// DELETE /library/{mangaId}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := requestutil.Int64Param(request, "mangaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, mangaID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /library/{type}.

Request:
  - type: progress | complete | favorite | following
  - lg: string
  - page, limit: int

Response:
  - 200: {data, pagination{total, page, limit, totalPages, next, prev}} with numeric or null next/prev
  - 400: Unknown type
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	language := requestutil.Language(request, handler.defaultLanguage)
	params := pagination.FromRequest(request, pagination.Standard)

	page, err := handler.service.List(request.Context(), userID, requestutil.Param(request, "type"), language, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

// POST /library/{type}/toggle/{mangaId}.
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := requestutil.Int64Param(request, "mangaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Toggle(request.Context(), userID, requestutil.Param(request, "type"), mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// GET /library/status/{mangaId}.
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID, err := requestutil.Int64Param(request, "mangaId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Status(request.Context(), userID, mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}
