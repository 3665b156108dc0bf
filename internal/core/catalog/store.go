// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

// Repository defines the data access contract for catalogue search.
type Repository interface {

	/*
		Search returns mangas matching every criterion of filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*manga.Manga: Page of matches with translations attached
		  - int: Total count across pages
		  - error: Database failures
	*/
	Search(context context.Context, filter Filter, limit, offset int) ([]*manga.Manga, int, error)

	/*
		SearchByCategory returns mangas attached to any category whose name
		contains the given substring (case-insensitive).
	*/
	SearchByCategory(context context.Context, name string, limit, offset int) ([]*manga.Manga, int, error)

	// ListCategories returns every category ordered by name.
	ListCategories(context context.Context) ([]Category, error)

	// ListLanguages returns every catalogue language ordered by name.
	ListLanguages(context context.Context) ([]Language, error)
}
