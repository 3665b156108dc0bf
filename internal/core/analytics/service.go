// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/platform/cache"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/pkg/slice"
)

// Service builds analytics reports.
type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new analytics [Service].
func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL, logger: logger}
}

/*
Overview returns totals and the top rankings, cached per language.

Manga titles are localized with the catalogue fallback rules.
*/
func (service *Service) Overview(context context.Context, language string) (*Overview, error) {
	key := constants.RedisPrefixAnalytics + "overview:" + language
	return cache.Load(context, service.cache, key, service.cacheTTL, service.logger, service.overviewLoader(language))
}

func (service *Service) overviewLoader(language string) func(context.Context) (*Overview, error) {
	return func(context context.Context) (*Overview, error) {
		return service.buildOverview(context, language)
	}
}

func (service *Service) buildOverview(context context.Context, language string) (*Overview, error) {
	totals, err := service.repo.Totals(context)
	if err != nil {
		return nil, err
	}

	categories, err := service.repo.TopCategories(context, TopLimit)
	if err != nil {
		return nil, err
	}

	mangas, err := service.repo.TopMangas(context, TopLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Totals:        totals,
		TopCategories: categories,
		TopMangas: slice.Map(mangas, func(m *manga.Manga) MangaViews {
			return MangaViews{
				ID:        m.ID,
				UUID:      m.UUID,
				Title:     manga.Localize(m.Translations, language).Title,
				Cover:     m.Cover,
				ViewCount: m.ViewCount,
			}
		}),
	}, nil
}

// Me returns the caller's counts. It is never cached.
func (service *Service) Me(context context.Context, userID string) (UserStats, error) {
	return service.repo.UserStats(context, userID)
}
