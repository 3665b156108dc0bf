// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wallpaper manages curated wallpaper sets.

Reads are public. Writes are admin-only and come from three sources: plain
JSON payloads, Pinterest board RSS feeds, and direct image uploads into
object storage.
*/
package wallpaper

import (
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// Wallpaper is a named set of images. Images are ordered by Position.
type Wallpaper struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cover     string    `json:"cover"`
	Source    *string   `json:"source,omitempty"`
	Images    []Image   `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Image is a single picture of a wallpaper set.
type Image struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// NewImages assigns IDs and positions to urls in order.
func NewImages(urls ...string) []Image {
	images := make([]Image, len(urls))
	for i, url := range urls {
		images[i] = Image{ID: uuid.New(), URL: url, Position: i}
	}
	return images
}

// Changes carries optional attributes. A non-nil Images replaces the set.
type Changes struct {
	Name   *string
	Cover  *string
	Images *[]string
}

var (
	ErrNotFound = apperr.NotFound("Wallpaper não encontrado")

	ErrStorageDisabled = apperr.ServiceUnavailable("Armazenamento de imagens indisponível")

	ErrFeedUnavailable = apperr.ServiceUnavailable("Não foi possível ler o feed do Pinterest")

	ErrFeedEmpty = apperr.ValidationError("O feed não contém imagens", apperr.FieldError{
		Field:   "url",
		Message: "Nenhuma imagem encontrada",
	})
)
