// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wallpaper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/constants"
	"github.com/taibuivan/mangashelf/internal/platform/storage"
	"github.com/taibuivan/mangashelf/internal/platform/validate"
	"github.com/taibuivan/mangashelf/pkg/pagination"
	"github.com/taibuivan/mangashelf/pkg/pointer"
	"github.com/taibuivan/mangashelf/pkg/slice"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// Page is one page of wallpapers.
type Page struct {
	Data       []*Wallpaper    `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateInput is a validated wallpaper payload. Cover defaults to the first image.
type CreateInput struct {
	Name   string   `json:"name"`
	Cover  string   `json:"cover"`
	Images []string `json:"images"`
}

// Upload is an image file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// # Service Layer

// Service implements wallpaper curation.
type Service struct {
	repo   Repository
	store  storage.ObjectStore
	feeds  FeedReader
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new wallpaper [Service]. store may be nil when
// object storage is not configured; uploads then fail with [ErrStorageDisabled].
func NewService(repo Repository, store storage.ObjectStore, feeds FeedReader, logger *slog.Logger) *Service {
	return &Service{repo: repo, store: store, feeds: feeds, logger: logger, now: time.Now}
}

func (service *Service) build(input CreateInput, source *string) *Wallpaper {
	urls := slice.Unique(input.Images)

	cover := input.Cover
	if cover == "" && len(urls) > 0 {
		cover = urls[0]
	}

	now := service.now().UTC()
	return &Wallpaper{
		ID:        uuid.New(),
		Name:      input.Name,
		Cover:     cover,
		Source:    source,
		Images:    NewImages(urls...),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// # Public Reads

// List returns wallpapers, newest first.
func (service *Service) List(context context.Context, params pagination.Params) (*Page, error) {
	wallpapers, total, err := service.repo.List(context, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return &Page{Data: wallpapers, Pagination: pagination.NewMeta(params, total)}, nil
}

// Get returns a wallpaper with its images.
func (service *Service) Get(context context.Context, id string) (*Wallpaper, error) {
	return service.repo.FindByID(context, id)
}

// # Admin Writes

// Create stores a wallpaper built from input.
func (service *Service) Create(context context.Context, input CreateInput) (*Wallpaper, error) {
	wallpaper := service.build(input, nil)
	if err := service.repo.Create(context, wallpaper); err != nil {
		return nil, err
	}

	service.logger.Info("wallpaper_created", slog.String("wallpaper_id", wallpaper.ID), slog.Int("images", len(wallpaper.Images)))
	return wallpaper, nil
}

// Update applies changes. A replacement image list is deduplicated in order.
func (service *Service) Update(context context.Context, id string, changes Changes) (*Wallpaper, error) {
	if changes.Images != nil {
		unique := slice.Unique(*changes.Images)
		changes.Images = &unique
	}
	return service.repo.Update(context, id, changes)
}

// Delete removes a wallpaper and its images.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("wallpaper_deleted", slog.String("wallpaper_id", id))
	return nil
}

/*
Import stores a batch of wallpapers atomically.

Returns:
  - int: Number of wallpapers created
  - error: apperr.ValidationError when the batch is empty or above [constants.MaxImportItems]
*/
func (service *Service) Import(context context.Context, inputs []CreateInput) (int, error) {
	if len(inputs) == 0 || len(inputs) > constants.MaxImportItems {
		return 0, apperr.ValidationError(validate.Message, apperr.FieldError{
			Field:   apperr.RootField,
			Message: fmt.Sprintf("Envie entre 1 e %d wallpapers", constants.MaxImportItems),
		})
	}

	wallpapers := slice.Map(inputs, func(input CreateInput) *Wallpaper {
		return service.build(input, nil)
	})
	if err := service.repo.Create(context, wallpapers...); err != nil {
		return 0, err
	}

	service.logger.Info("wallpapers_imported", slog.Int("count", len(wallpapers)))
	return len(wallpapers), nil
}

/*
ImportPinterest creates one wallpaper from a board RSS feed.

The wallpaper is named after the board unless name is provided, keeps the feed
URL as its source, and holds at most [constants.MaxImportItems] images.
*/
func (service *Service) ImportPinterest(context context.Context, url, name string) (*Wallpaper, error) {
	feed, err := service.feeds.Read(context, url)
	if err != nil {
		service.logger.Warn("pinterest_feed_failed", slog.String("url", url), slog.Any("error", err))
		return nil, ErrFeedUnavailable
	}
	if len(feed.Images) == 0 {
		return nil, ErrFeedEmpty
	}

	images := feed.Images
	if len(images) > constants.MaxImportItems {
		images = images[:constants.MaxImportItems]
	}
	if name == "" {
		name = feed.Title
	}
	if name == "" {
		name = "Pinterest"
	}

	wallpaper := service.build(CreateInput{Name: name, Images: images}, pointer.To(url))
	if err := service.repo.Create(context, wallpaper); err != nil {
		return nil, err
	}

	service.logger.Info("pinterest_feed_imported",
		slog.String("wallpaper_id", wallpaper.ID),
		slog.String("url", url),
		slog.Int("images", len(wallpaper.Images)),
	)
	return wallpaper, nil
}

// AddImage uploads a file to object storage and appends it to the wallpaper.
func (service *Service) AddImage(context context.Context, id string, upload Upload) (*Image, error) {
	if service.store == nil {
		return nil, ErrStorageDisabled
	}

	if _, err := service.repo.FindByID(context, id); err != nil {
		return nil, err
	}

	key := storage.ObjectKey("wallpapers/"+id, upload.Filename)
	url, err := service.store.Put(context, key, upload.Body, upload.Size, upload.ContentType)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	image, err := service.repo.AppendImage(context, id, Image{ID: uuid.New(), URL: url})
	if err != nil {
		if cleanupErr := service.store.Delete(context, key); cleanupErr != nil {
			service.logger.Warn("wallpaper_upload_cleanup_failed", slog.String("key", key), slog.Any("error", cleanupErr))
		}
		return nil, err
	}

	service.logger.Info("wallpaper_image_uploaded", slog.String("wallpaper_id", id), slog.String("key", key), slog.Int64("bytes", upload.Size))
	return image, nil
}
