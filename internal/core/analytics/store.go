// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

// Repository defines the aggregate queries.
type Repository interface {
	Totals(context context.Context) (Totals, error)
	TopCategories(context context.Context, limit int) ([]CategoryCount, error)

	// TopMangas returns mangas by view count desc with their translations.
	TopMangas(context context.Context, limit int) ([]*manga.Manga, error)

	UserStats(context context.Context, userID string) (UserStats, error)
}
