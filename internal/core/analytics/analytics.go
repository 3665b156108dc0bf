// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package analytics reports count based aggregates for admins and for the caller.
package analytics

// Totals counts rows of every reported table.
type Totals struct {
	Mangas         int64 `json:"mangas"`
	Users          int64 `json:"users"`
	Reviews        int64 `json:"reviews"`
	Collections    int64 `json:"collections"`
	Playlists      int64 `json:"playlists"`
	Wallpapers     int64 `json:"wallpapers"`
	LibraryEntries int64 `json:"libraryEntries"`
}

// CategoryCount is a category and how many mangas carry it.
type CategoryCount struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	MangaCount int64  `json:"mangaCount"`
}

// MangaViews is a manga ranked by view count.
type MangaViews struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Title     string `json:"title"`
	Cover     string `json:"cover"`
	ViewCount int64  `json:"viewCount"`
}

// Overview is the admin dashboard payload.
type Overview struct {
	Totals        Totals          `json:"totals"`
	TopCategories []CategoryCount `json:"topCategories"`
	TopMangas     []MangaViews    `json:"topMangas"`
}

// LibraryCounts counts the caller's library flags.
type LibraryCounts struct {
	Total     int64 `json:"total"`
	Read      int64 `json:"read"`
	Completed int64 `json:"completed"`
	Liked     int64 `json:"liked"`
	Followed  int64 `json:"followed"`
}

// CollectionCounts splits the caller's collections by relationship.
type CollectionCounts struct {
	Owned         int64 `json:"owned"`
	Collaborating int64 `json:"collaborating"`
}

// UserStats is the caller's personal summary.
type UserStats struct {
	Library     LibraryCounts    `json:"library"`
	Reviews     int64            `json:"reviews"`
	Collections CollectionCounts `json:"collections"`
	Playlists   int64            `json:"playlists"`
}

// TopLimit bounds both overview rankings.
const TopLimit = 10
