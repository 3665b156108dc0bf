// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/pkg/pagination"
	"github.com/taibuivan/mangashelf/pkg/slice"
)

// Page is one page of a library listing. Next and Prev are page numbers or null.
type Page struct {
	Data       []Item                 `json:"data"`
	Pagination pagination.LibraryMeta `json:"pagination"`
}

// # Service Layer

// Service implements the library business rules.
type Service struct {
	repo   Repository
	mangas manga.Repository
	logger *slog.Logger
}

// NewService constructs a new library [Service].
func NewService(repo Repository, mangas manga.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, mangas: mangas, logger: logger}
}

/*
Upsert creates or updates the caller's entry for a manga.

Creation defaults every missing flag to false. An update only touches the
flags present in changes.
*/
func (service *Service) Upsert(context context.Context, userID string, mangaID int64, changes Changes) (*Entry, error) {
	if err := service.requireManga(context, mangaID); err != nil {
		return nil, err
	}

	entry, err := service.repo.Mutate(context, userID, mangaID, func(existing *Entry) (*Entry, error) {
		next := &Entry{UserID: userID, MangaID: mangaID}
		if existing != nil {
			copied := *existing
			next = &copied
		}
		changes.apply(next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("library_entry_saved", slog.String("user_id", userID), slog.Int64("manga_id", mangaID))
	return entry, nil
}

// Update applies changes to an existing entry. A missing entry is [ErrEntryNotFound].
func (service *Service) Update(context context.Context, userID string, mangaID int64, changes Changes) (*Entry, error) {
	return service.repo.Mutate(context, userID, mangaID, func(existing *Entry) (*Entry, error) {
		if existing == nil {
			return nil, ErrEntryNotFound
		}
		next := *existing
		changes.apply(&next)
		return &next, nil
	})
}

// Remove hard-deletes the caller's entry.
func (service *Service) Remove(context context.Context, userID string, mangaID int64) error {
	if err := service.repo.Delete(context, userID, mangaID); err != nil {
		return err
	}

	service.logger.Info("library_entry_removed", slog.String("user_id", userID), slog.Int64("manga_id", mangaID))
	return nil
}

/*
List returns the caller's mangas for a listing type.

An unknown type fails before any query runs.
*/
func (service *Service) List(context context.Context, userID, listType, language string, params pagination.Params) (*Page, error) {
	flag, err := ParseType(listType)
	if err != nil {
		return nil, err
	}

	mangas, total, err := service.repo.List(context, userID, flag, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}

	items := slice.Map(mangas, func(m *manga.Manga) Item {
		return Item{
			ID:        m.ID,
			UUID:      m.UUID,
			Title:     manga.Localize(m.Translations, language).Title,
			Cover:     m.Cover,
			ViewCount: m.ViewCount,
		}
	})

	return &Page{Data: items, Pagination: pagination.NewLibraryMeta(params, total)}, nil
}

/*
Toggle flips one flag of the caller's entry.

Without an entry, one is created with only that flag set. The other flags are
never touched.
*/
func (service *Service) Toggle(context context.Context, userID, toggleType string, mangaID int64) (*Entry, error) {
	flag, err := ParseType(toggleType)
	if err != nil {
		return nil, err
	}

	if err := service.requireManga(context, mangaID); err != nil {
		return nil, err
	}

	entry, err := service.repo.Mutate(context, userID, mangaID, func(existing *Entry) (*Entry, error) {
		if existing == nil {
			next := &Entry{UserID: userID, MangaID: mangaID}
			next.Set(flag, true)
			return next, nil
		}
		next := *existing
		next.Set(flag, !existing.Get(flag))
		return &next, nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("library_entry_toggled",
		slog.String("user_id", userID),
		slog.Int64("manga_id", mangaID),
		slog.String("flag", string(flag)),
		slog.Bool("value", entry.Get(flag)),
	)
	return entry, nil
}

// Status reports the four flags, all false when the caller has no entry.
func (service *Service) Status(context context.Context, userID string, mangaID int64) (Status, error) {
	entry, err := service.repo.Find(context, userID, mangaID)
	if errors.Is(err, ErrEntryNotFound) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}

	return Status{
		IsRead:     entry.IsRead,
		IsLiked:    entry.IsLiked,
		IsFollowed: entry.IsFollowed,
		IsComplete: entry.IsComplete,
	}, nil
}

func (service *Service) requireManga(context context.Context, mangaID int64) error {
	exists, err := service.mangas.Exists(context, mangaID)
	if err != nil {
		return err
	}
	if !exists {
		return manga.ErrNotFound
	}
	return nil
}
