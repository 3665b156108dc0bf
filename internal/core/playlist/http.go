// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/taibuivan/mangashelf/internal/platform/ctxutil"
	"github.com/taibuivan/mangashelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// # Request DTOs

type createRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Cover       *string `json:"cover"`
	IsPublic    bool    `json:"isPublic"`
	MangaIDs    []int64 `json:"mangaIds"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Cover, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.MangaIDs, validation.Each(validation.Required, validation.Min(int64(1)))),
	)
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Cover       *string  `json:"cover"`
	IsPublic    *bool    `json:"isPublic"`
	MangaIDs    *[]int64 `json:"mangaIds"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 120)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Cover, is.URL),
		validation.Field(&r.MangaIDs, validation.By(positiveIDs)),
	)
}

// positiveIDs validates an optional replacement item list.
func positiveIDs(value any) error {
	ids, _ := value.(*[]int64)
	if ids == nil {
		return nil
	}
	return validation.Validate(*ids, validation.Each(validation.Required, validation.Min(int64(1))))
}

// # Handler Implementation

// Handler implements the HTTP layer for playlists.
type Handler struct {
	service *Service
}

// NewHandler constructs a new playlist [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /playlists. GET /{id} also serves anonymous callers.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.get)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.create)
		authed.Get("/", handler.list)
		authed.Put("/{id}", handler.update)
		authed.Delete("/{id}", handler.delete)
	})

	return router
}

/*
POST /playlists.

Request (Body):
  - name: string (required)
  - description, cover: string (optional)
  - isPublic: bool (default false)
  - mangaIds: []int64, kept in order

Response:
  - 201: Playlist
  - 404: A listed manga does not exist
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Create(request.Context(), userID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, playlist)
}

// GET /playlists.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.List(request.Context(), userID, pagination.FromRequest(request, pagination.Standard))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

// GET /playlists/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlist, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"), ctxutil.UserID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// PUT /playlists/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), userID, Changes(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

// DELETE /playlists/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
