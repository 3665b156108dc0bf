// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed analytics store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Totals(context context.Context) (Totals, error) {
	var totals Totals
	err := repository.db.QueryRow(context, `
		SELECT
			(SELECT COUNT(*) FROM core.manga),
			(SELECT COUNT(*) FROM users.account),
			(SELECT COUNT(*) FROM social.review),
			(SELECT COUNT(*) FROM library.collection),
			(SELECT COUNT(*) FROM library.playlist),
			(SELECT COUNT(*) FROM core.wallpaper),
			(SELECT COUNT(*) FROM library.entry)`,
	).Scan(
		&totals.Mangas, &totals.Users, &totals.Reviews, &totals.Collections,
		&totals.Playlists, &totals.Wallpapers, &totals.LibraryEntries,
	)
	return totals, dberr.Wrap(err, "analytics_totals")
}

func (repository *PostgresRepository) TopCategories(context context.Context, limit int) ([]CategoryCount, error) {
	rows, err := repository.db.Query(context, `
		SELECT c.id, c.name, COUNT(mc.mangaid) AS mangacount
		FROM core.category c
		LEFT JOIN core.mangacategory mc ON mc.categoryid = c.id
		GROUP BY c.id, c.name
		ORDER BY mangacount DESC, c.name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "analytics_top_categories")
	}
	defer rows.Close()

	categories := make([]CategoryCount, 0, limit)
	for rows.Next() {
		var category CategoryCount
		if err := rows.Scan(&category.ID, &category.Name, &category.MangaCount); err != nil {
			return nil, dberr.Wrap(err, "scan_top_category")
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), "analytics_top_categories")
}

func (repository *PostgresRepository) TopMangas(context context.Context, limit int) ([]*manga.Manga, error) {
	rows, err := repository.db.Query(context, `
		SELECT `+manga.Columns+`, COUNT(*) OVER() AS total
		FROM core.manga m
		ORDER BY m.viewcount DESC, m.id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "analytics_top_mangas")
	}

	mangas, _, err := manga.ScanTotal(rows, "analytics_top_mangas")
	return mangas, err
}

func (repository *PostgresRepository) UserStats(context context.Context, userID string) (UserStats, error) {
	var stats UserStats
	err := repository.db.QueryRow(context, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE isread),
			COUNT(*) FILTER (WHERE iscomplete),
			COUNT(*) FILTER (WHERE isliked),
			COUNT(*) FILTER (WHERE isfollowed),
			(SELECT COUNT(*) FROM social.review WHERE userid = $1),
			(SELECT COUNT(*) FROM library.collection WHERE ownerid = $1),
			(SELECT COUNT(*) FROM library.collectioncollaborator WHERE userid = $1),
			(SELECT COUNT(*) FROM library.playlist WHERE userid = $1)
		FROM library.entry
		WHERE userid = $1`, userID,
	).Scan(
		&stats.Library.Total, &stats.Library.Read, &stats.Library.Completed,
		&stats.Library.Liked, &stats.Library.Followed,
		&stats.Reviews, &stats.Collections.Owned, &stats.Collections.Collaborating, &stats.Playlists,
	)
	return stats, dberr.Wrap(err, "analytics_user_stats")
}
