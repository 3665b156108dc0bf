// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/cache"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/validate"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

const (
	cacheKeyCategories = constants.RedisPrefixCatalog + "categories"
	cacheKeyLanguages  = constants.RedisPrefixCatalog + "languages"
)

// Query is a search request after transport decoding.
type Query struct {
	Name     string
	Category string
	Status   string
	Type     string
	Language string
	Params   pagination.Params
}

// Page is one page of search results.
type Page struct {
	Data       []manga.Summary       `json:"data"`
	Pagination pagination.SearchMeta `json:"pagination"`
}

// # Service Layer

// Service orchestrates catalogue search and cached lookups.
type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new catalog [Service].
func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

/*
Search runs a filtered catalogue search.

Status and type are validated against the known enums; an unknown value is a
validation error rather than an empty result.

Returns:
  - *Page: Results projected into the requested language
  - error: Validation or retrieval failures
*/
func (service *Service) Search(context context.Context, query Query) (*Page, error) {
	filter := Filter{
		Tokens:   Tokenize(query.Name),
		Category: strings.TrimSpace(query.Category),
		Status:   manga.Status(strings.ToLower(strings.TrimSpace(query.Status))),
		Type:     strings.TrimSpace(query.Type),
	}

	validator := &validate.Validator{}
	if filter.Status != "" {
		validator.Custom("status", !filter.Status.IsValid(), "Status inválido")
	}
	if filter.Type != "" {
		validator.Custom("type", !isKnownType(filter.Type), "Tipo inválido")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	mangas, total, err := service.repo.Search(context, filter, query.Params.Take, query.Params.Skip)
	if err != nil {
		return nil, err
	}

	return &Page{
		Data:       manga.SummarizeAll(mangas, query.Language, manga.ProjectExact),
		Pagination: pagination.NewSearchMeta(query.Params, total),
	}, nil
}

/*
SearchCategories lists mangas whose categories contain name.
*/
func (service *Service) SearchCategories(context context.Context, name, language string, params pagination.Params) (*Page, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ValidationError(validate.Message, apperr.FieldError{Field: "name", Message: "Campo obrigatório"})
	}

	mangas, total, err := service.repo.SearchByCategory(context, name, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}

	return &Page{
		Data:       manga.SummarizeAll(mangas, language, manga.ProjectExact),
		Pagination: pagination.NewSearchMeta(params, total),
	}, nil
}

// # Lookups

// ListCategories returns every category, served from cache when possible.
func (service *Service) ListCategories(context context.Context) ([]Category, error) {
	return cache.Load(context, service.cache, cacheKeyCategories, service.cacheTTL, service.logger, service.repo.ListCategories)
}

// ListLanguages returns every catalogue language, served from cache when possible.
func (service *Service) ListLanguages(context context.Context) ([]Language, error) {
	return cache.Load(context, service.cache, cacheKeyLanguages, service.cacheTTL, service.logger, service.repo.ListLanguages)
}

// ListTypes returns the fixed publication formats. It never touches storage.
func (service *Service) ListTypes() []manga.Type {
	return manga.Types()
}

func isKnownType(value string) bool {
	for _, t := range manga.Types() {
		if strings.EqualFold(string(t), value) {
			return true
		}
	}
	return false
}
