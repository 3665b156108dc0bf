// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package playlist manages ordered, owner-curated manga lists.
package playlist

import (
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
)

// Playlist is an ordered list of mangas. MangaIDs keep their insertion order.
type Playlist struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Cover       *string   `json:"cover"`
	IsPublic    bool      `json:"isPublic"`
	MangaIDs    []int64   `json:"mangaIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Changes carries optional attributes. A non-nil MangaIDs replaces the items.
type Changes struct {
	Name        *string
	Description *string
	Cover       *string
	IsPublic    *bool
	MangaIDs    *[]int64
}

var (
	ErrNotFound = apperr.NotFound("Playlist não encontrada")
	ErrNotOwner = apperr.Forbidden("Apenas o dono pode modificar esta playlist")
)
