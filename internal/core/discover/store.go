// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discover

import (
	"context"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

// Repository defines the data access contract for discovery feeds.
type Repository interface {

	// ListRanked returns every manga ordered by the given key.
	ListRanked(context context.Context, order Order, limit, offset int) ([]*manga.Manga, int, error)

	// UserExists reports whether the account exists.
	UserExists(context context.Context, userID string) (bool, error)

	// PreferredCategoryIDs returns the categories the user picked on their profile.
	PreferredCategoryIDs(context context.Context, userID string) ([]int64, error)

	// ViewedCategoryIDs returns the categories of every manga in the user's view history.
	ViewedCategoryIDs(context context.Context, userID string) ([]int64, error)

	// LikedCategoryIDs returns the categories of every manga the user liked.
	LikedCategoryIDs(context context.Context, userID string) ([]int64, error)

	/*
		ListByCategories returns mangas attached to any of categoryIDs, newest first.

		Parameters:
		  - context: context.Context
		  - categoryIDs: []int64 (non-empty)
		  - limit, offset: int
	*/
	ListByCategories(context context.Context, categoryIDs []int64, limit, offset int) ([]*manga.Manga, int, error)

	/*
		ListRecommended returns mangas attached to any of categoryIDs that the
		user has not viewed, ordered by like count then view count.
	*/
	ListRecommended(context context.Context, userID string, categoryIDs []int64, limit, offset int) ([]*manga.Manga, int, error)

	// RecordView appends a history row and increments the manga's view count atomically.
	RecordView(context context.Context, userID string, mangaID int64) error
}
