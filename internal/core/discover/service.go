// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discover

import (
	"context"
	"log/slog"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/pkg/pagination"
	"github.com/taibuivan/mangashelf/pkg/slice"
)

// # Service Layer

// Service assembles the discovery feeds.
type Service struct {
	repo   Repository
	mangas manga.Repository
	logger *slog.Logger
}

// NewService constructs a new discovery [Service].
func NewService(repo Repository, mangas manga.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, mangas: mangas, logger: logger}
}

// Recent lists mangas by release date, newest first.
func (service *Service) Recent(context context.Context, language string, params pagination.Params) (*Page, error) {
	return service.ranked(context, OrderRecent, language, params)
}

// MostViewed lists mangas by view count.
func (service *Service) MostViewed(context context.Context, language string, params pagination.Params) (*Page, error) {
	return service.ranked(context, OrderMostViewed, language, params)
}

// MostLiked lists mangas by like count.
func (service *Service) MostLiked(context context.Context, language string, params pagination.Params) (*Page, error) {
	return service.ranked(context, OrderMostLiked, language, params)
}

func (service *Service) ranked(context context.Context, order Order, language string, params pagination.Params) (*Page, error) {
	mangas, total, err := service.repo.ListRanked(context, order, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return page(mangas, total, language, params), nil
}

/*
Feed lists mangas in the user's preferred categories, newest first.

A user without preferences gets an empty page, not an error.
*/
func (service *Service) Feed(context context.Context, userID, language string, params pagination.Params) (*Page, error) {
	categories, err := service.repo.PreferredCategoryIDs(context, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return emptyPage(params), nil
	}

	mangas, total, err := service.repo.ListByCategories(context, categories, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return page(mangas, total, language, params), nil
}

/*
Recommended builds the "ia" list for a user.

Steps:
 1. Candidate categories = preferred ∪ viewed ∪ liked, deduplicated
 2. Mangas in those categories the user has not viewed
 3. Sorted by like count, then view count

Returns:
  - *Page: Empty when the user does not exist or has no candidate categories
  - error: Retrieval failures
*/
func (service *Service) Recommended(context context.Context, userID, language string, params pagination.Params) (*Page, error) {
	exists, err := service.repo.UserExists(context, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return emptyPage(params), nil
	}

	preferred, err := service.repo.PreferredCategoryIDs(context, userID)
	if err != nil {
		return nil, err
	}
	viewed, err := service.repo.ViewedCategoryIDs(context, userID)
	if err != nil {
		return nil, err
	}
	liked, err := service.repo.LikedCategoryIDs(context, userID)
	if err != nil {
		return nil, err
	}

	categories := slice.Unique(preferred, viewed, liked)
	if len(categories) == 0 {
		return emptyPage(params), nil
	}

	mangas, total, err := service.repo.ListRecommended(context, userID, categories, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return page(mangas, total, language, params), nil
}

// RecordView appends a view to the caller's history.
func (service *Service) RecordView(context context.Context, userID string, mangaID int64) error {
	exists, err := service.mangas.Exists(context, mangaID)
	if err != nil {
		return err
	}
	if !exists {
		return manga.ErrNotFound
	}

	if err := service.repo.RecordView(context, userID, mangaID); err != nil {
		return err
	}

	service.logger.Debug("manga_view_recorded", slog.String("user_id", userID), slog.Int64("manga_id", mangaID))
	return nil
}

func page(mangas []*manga.Manga, total int, language string, params pagination.Params) *Page {
	return &Page{
		Data:       manga.SummarizeAll(mangas, language, manga.Localize),
		Pagination: pagination.NewMeta(params, total),
	}
}
