// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/mangashelf/pkg/pagination"
	"github.com/taibuivan/mangashelf/pkg/pointer"
	"github.com/taibuivan/mangashelf/pkg/slice"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// Page is one page of the caller's playlists.
type Page struct {
	Data       []*Playlist     `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateInput is a validated create request.
type CreateInput struct {
	Name        string
	Description *string
	Cover       *string
	IsPublic    bool
	MangaIDs    []int64
}

// # Service Layer

// Service implements playlist ownership and visibility rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new playlist [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create stores a playlist for userID. Repeated manga IDs keep their first position.
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Playlist, error) {
	now := service.now().UTC()
	playlist := &Playlist{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Cover:       input.Cover,
		IsPublic:    input.IsPublic,
		MangaIDs:    slice.Unique(input.MangaIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, playlist); err != nil {
		return nil, err
	}

	service.logger.Info("playlist_created",
		slog.String("playlist_id", playlist.ID),
		slog.String("user_id", userID),
		slog.Int("items", len(playlist.MangaIDs)),
	)
	return playlist, nil
}

// List returns the caller's playlists, newest first.
func (service *Service) List(context context.Context, userID string, params pagination.Params) (*Page, error) {
	playlists, total, err := service.repo.ListByUser(context, userID, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return &Page{Data: playlists, Pagination: pagination.NewMeta(params, total)}, nil
}

// Get returns a public playlist, or a private one to its owner. Private
// playlists look missing to everyone else.
func (service *Service) Get(context context.Context, id, userID string) (*Playlist, error) {
	playlist, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !playlist.IsPublic && playlist.UserID != userID {
		return nil, ErrNotFound
	}
	return playlist, nil
}

// Update applies changes when userID owns the playlist.
func (service *Service) Update(context context.Context, id, userID string, changes Changes) (*Playlist, error) {
	current, err := service.owned(context, id, userID)
	if err != nil {
		return nil, err
	}

	if changes.MangaIDs != nil {
		changes.MangaIDs = pointer.To(slice.Unique(*changes.MangaIDs))
	}

	updated, err := service.repo.Update(context, id, changes)
	if err != nil {
		return nil, err
	}

	service.logger.Info("playlist_updated",
		slog.String("playlist_id", id),
		slog.Bool("is_public", pointer.Fallback(changes.IsPublic, current.IsPublic)),
	)
	return updated, nil
}

// Delete removes a playlist owned by userID.
func (service *Service) Delete(context context.Context, id, userID string) error {
	if _, err := service.owned(context, id, userID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("playlist_deleted", slog.String("playlist_id", id), slog.String("user_id", userID))
	return nil
}

func (service *Service) owned(context context.Context, id, userID string) (*Playlist, error) {
	playlist, err := service.Get(context, id, userID)
	if err != nil {
		return nil, err
	}
	if playlist.UserID != userID {
		return nil, ErrNotOwner
	}
	return playlist, nil
}
