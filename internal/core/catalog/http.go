// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog provides the HTTP interface for search and catalogue lookups.

# Routing Strategy

  - Quick search: GET /search (name only, query string).
  - Body search: POST /search{/lg}, POST /search/categories{/lg}.
  - Advanced search: GET /search/advanced{/lg} (every filter, query string).
  - Lookups: GET /categories, /types, /languages.

Every route is public.
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	requestutil "github.com/taibuivan/mangashelf/internal/platform/request"
	"github.com/taibuivan/mangashelf/internal/platform/respond"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// # Request DTOs

type searchRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

func (r searchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 200)),
		validation.Field(&r.Category, validation.Length(0, 64)),
		validation.Field(&r.Page, validation.Min(0)),
	)
}

type categorySearchRequest struct {
	Name  string `json:"name"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func (r categorySearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 64)),
	)
}

// bodyParams lets page/limit in a JSON body override the query string.
func bodyParams(request *http.Request, page, limit int) pagination.Params {
	params := pagination.FromRequest(request, pagination.Search)
	if page > 0 {
		params = pagination.New(page, params.Take, pagination.Search)
	}
	if limit != 0 {
		params = pagination.New(params.Page, limit, pagination.Search)
	}
	return params
}

// # Handler Implementation

// Handler implements the HTTP layer for catalogue operations.
type Handler struct {
	service         *Service
	defaultLanguage string
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service, defaultLanguage string) *Handler {
	return &Handler{service: service, defaultLanguage: defaultLanguage}
}

// Register mounts the catalogue routes on router. They span several top-level
// prefixes, so they are registered rather than mounted.
func (handler *Handler) Register(router chi.Router) {
	router.Route("/search", func(search chi.Router) {
		search.Get("/", handler.quickSearch)
		search.Post("/", handler.bodySearch)
		search.Get("/advanced", handler.advancedSearch)
		search.Get("/advanced/{lg}", handler.advancedSearch)
		search.Post("/categories", handler.categorySearch)
		search.Post("/categories/{lg}", handler.categorySearch)
		search.Post("/{lg}", handler.bodySearch)
	})

	router.Get("/categories", handler.listCategories)
	router.Get("/types", handler.listTypes)
	router.Get("/languages", handler.listLanguages)
}

// # Search Endpoints

/*
GET /search.

Request:
  - name (or q): string
  - lg: string (default pt-BR)
  - page, limit: int (limit max 50)

Response:
  - 200: {data, pagination{total, to, page, limit, totalPages, next, prev}}
*/
func (handler *Handler) quickSearch(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Query(request, "name")
	if name == "" {
		name = requestutil.Query(request, "q")
	}

	handler.runSearch(writer, request, Query{
		Name:     name,
		Language: requestutil.Language(request, handler.defaultLanguage),
		Params:   pagination.FromRequest(request, pagination.Search),
	})
}

/*
GET /search/advanced{/lg}.

Request:
  - name, category, status, type: string
  - page, limit: int
*/
func (handler *Handler) advancedSearch(writer http.ResponseWriter, request *http.Request) {
	handler.runSearch(writer, request, Query{
		Name:     requestutil.Query(request, "name"),
		Category: requestutil.Query(request, "category"),
		Status:   requestutil.Query(request, "status"),
		Type:     requestutil.Query(request, "type"),
		Language: requestutil.Language(request, handler.defaultLanguage),
		Params:   pagination.FromRequest(request, pagination.Search),
	})
}

/*
POST /search{/lg}.

Request (Body):
  - searchRequest JSON object

Response:
  - 200: Search page
  - 400: Validation error
*/
func (handler *Handler) bodySearch(writer http.ResponseWriter, request *http.Request) {
	var input searchRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.runSearch(writer, request, Query{
		Name:     input.Name,
		Category: input.Category,
		Status:   input.Status,
		Type:     input.Type,
		Language: requestutil.Language(request, handler.defaultLanguage),
		Params:   bodyParams(request, input.Page, input.Limit),
	})
}

func (handler *Handler) runSearch(writer http.ResponseWriter, request *http.Request, query Query) {
	page, err := handler.service.Search(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

/*
POST /search/categories{/lg}.

Request (Body):
  - name: string (category name substring)
  - page, limit: int
*/
func (handler *Handler) categorySearch(writer http.ResponseWriter, request *http.Request) {
	var input categorySearchRequest
	if err := requestutil.DecodeValid(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	language := requestutil.Language(request, handler.defaultLanguage)
	page, err := handler.service.SearchCategories(request.Context(), input.Name, language, bodyParams(request, input.Page, input.Limit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Data, page.Pagination)
}

// # Lookup Endpoints

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listTypes(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.ListTypes())
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	languages, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, languages)
}
