// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

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
	Cover       *string `json:"cover"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	MangaIDs    []int64 `json:"mangaIds"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Cover, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Status, validation.In(string(StatusPrivate), string(StatusPublic))),
		validation.Field(&r.MangaIDs, validation.Each(validation.Required, validation.Min(int64(1)))),
	)
}

type updateRequest struct {
	Name        *string `json:"name"`
	Cover       *string `json:"cover"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 120)),
		validation.Field(&r.Cover, is.URL),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Status, validation.NilOrNotEmpty, validation.In(string(StatusPrivate), string(StatusPublic))),
	)
}

func (r updateRequest) changes() Changes {
	changes := Changes{Name: r.Name, Cover: r.Cover, Description: r.Description}
	if r.Status != nil {
		status := Status(*r.Status)
		changes.Status = &status
	}
	return changes
}

type collaboratorRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (r collaboratorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Role, validation.In(string(RoleEditor), string(RoleAdmin))),
	)
}

type roleRequest struct {
	Role string `json:"role"`
}

func (r roleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.In(string(RoleEditor), string(RoleAdmin))),
	)
}

// # Handler Implementation

// Handler implements the HTTP layer for collections.
type Handler struct {
	service         *Service
	defaultLanguage string
}

// NewHandler constructs a new collection [Handler].
func NewHandler(service *Service, defaultLanguage string) *Handler {
	return &Handler{service: service, defaultLanguage: defaultLanguage}
}

/*
Routes returns the router mounted at /collections.

GET /{id} answers anonymous callers for PUBLIC collections; every other route
requires a caller.
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.get)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.create)
		authed.Get("/", handler.list)
		authed.Get("/public", handler.listPublic)
		authed.Get("/check/{mangaId}", handler.checkManga)
		authed.Put("/{id}", handler.update)
		authed.Delete("/{id}", handler.delete)
		authed.Post("/{id}/toggle/{mangaId}", handler.toggleManga)

		authed.Route("/{id}/collaborators", func(collaborators chi.Router) {
			collaborators.Post("/", handler.addCollaborator)
			collaborators.Get("/", handler.listCollaborators)
			collaborators.Put("/{userId}", handler.updateCollaborator)
			collaborators.Delete("/{userId}", handler.removeCollaborator)
		})
	})

	return router
}

// # Collection Endpoints

/*
POST /collections.

Request (Body):
  - name: string (required)
  - cover, description: string (optional)
  - status: PRIVATE | PUBLIC (default PRIVATE)
  - mangaIds: []int64 (optional)

Response:
  - 201: Collection
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

	collection, err := handler.service.Create(request.Context(), userID, CreateInput{
		Name:        input.Name,
		Cover:       input.Cover,
		Description: input.Description,
		Status:      Status(input.Status),
		MangaIDs:    input.MangaIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, collection)
}

// GET /collections.
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

// GET /collections/public.
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListPublic(request.Context(), pagination.FromRequest(request, pagination.Narrow))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

// GET /collections/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	language := requestutil.Language(request, handler.defaultLanguage)

	detail, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"), ctxutil.UserID(request.Context()), language)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// PUT /collections/{id}.
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

	collection, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), userID, input.changes())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collection)
}

// DELETE /collections/{id}.
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

// GET /collections/check/{mangaId}.
func (handler *Handler) checkManga(writer http.ResponseWriter, request *http.Request) {
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

	inclusions, err := handler.service.CheckManga(request.Context(), userID, mangaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, inclusions)
}

/*
POST /collections/{id}/toggle/{mangaId}.

Response:
  - 200: {collection, action: "added" | "removed"}
  - 403: Caller cannot edit the collection
  - 404: Manga not found
*/
func (handler *Handler) toggleManga(writer http.ResponseWriter, request *http.Request) {
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

	language := requestutil.Language(request, handler.defaultLanguage)
	result, err := handler.service.ToggleManga(request.Context(), requestutil.Param(request, "id"), userID, mangaID, language)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// # Collaborator Endpoints

// POST /collections/{id}/collaborators.
func (handler *Handler) addCollaborator(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input collaboratorRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborator, err := handler.service.AddCollaborator(request.Context(), requestutil.Param(request, "id"), userID, input.UserID, Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, collaborator)
}

// GET /collections/{id}/collaborators.
func (handler *Handler) listCollaborators(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborators, err := handler.service.ListCollaborators(request.Context(), requestutil.Param(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collaborators)
}

// PUT /collections/{id}/collaborators/{userId}.
func (handler *Handler) updateCollaborator(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input roleRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborator, err := handler.service.UpdateCollaboratorRole(request.Context(),
		requestutil.Param(request, "id"), userID, requestutil.Param(request, "userId"), Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collaborator)
}

// DELETE /collections/{id}/collaborators/{userId}.
func (handler *Handler) removeCollaborator(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RemoveCollaborator(request.Context(), requestutil.Param(request, "id"), userID, requestutil.Param(request, "userId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
