// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discover

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

// NewPostgresRepository constructs a PostgreSQL backed discovery store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var orderClauses = map[Order]string{
	OrderRecent:     "m.releasedat DESC NULLS LAST, m.id DESC",
	OrderMostViewed: "m.viewcount DESC, m.id DESC",
	OrderMostLiked:  "m.likecount DESC, m.id DESC",
}

func (repository *PostgresRepository) ListRanked(context context.Context, order Order, limit, offset int) ([]*manga.Manga, int, error) {
	clause, ok := orderClauses[order]
	if !ok {
		clause = orderClauses[OrderRecent]
	}

	query := `SELECT ` + manga.Columns + `, COUNT(*) OVER() AS total
		FROM core.manga m
		ORDER BY ` + clause + `
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_ranked")
	}

	return manga.ScanTotal(rows, "list_ranked")
}

func (repository *PostgresRepository) UserExists(context context.Context, userID string) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM users.account WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "user_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) PreferredCategoryIDs(context context.Context, userID string) ([]int64, error) {
	return repository.ids(context, "preferred_categories",
		`SELECT categoryid FROM users.preferredcategory WHERE userid = $1`, userID)
}

func (repository *PostgresRepository) ViewedCategoryIDs(context context.Context, userID string) ([]int64, error) {
	return repository.ids(context, "viewed_categories", `
		SELECT DISTINCT mc.categoryid
		FROM library.viewhistory vh
		JOIN core.mangacategory mc ON mc.mangaid = vh.mangaid
		WHERE vh.userid = $1`, userID)
}

func (repository *PostgresRepository) LikedCategoryIDs(context context.Context, userID string) ([]int64, error) {
	return repository.ids(context, "liked_categories", `
		SELECT DISTINCT mc.categoryid
		FROM library.entry e
		JOIN core.mangacategory mc ON mc.mangaid = e.mangaid
		WHERE e.userid = $1 AND e.isliked`, userID)
}

func (repository *PostgresRepository) ids(context context.Context, action, query string, args ...any) ([]int64, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		ids = append(ids, id)
	}

	return ids, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) ListByCategories(context context.Context, categoryIDs []int64, limit, offset int) ([]*manga.Manga, int, error) {
	query := `SELECT ` + manga.Columns + `, COUNT(*) OVER() AS total
		FROM core.manga m
		WHERE EXISTS (
			SELECT 1 FROM core.mangacategory mc
			WHERE mc.mangaid = m.id AND mc.categoryid = ANY($1)
		)
		ORDER BY m.createdat DESC, m.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, categoryIDs, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_feed")
	}

	return manga.ScanTotal(rows, "list_feed")
}

func (repository *PostgresRepository) ListRecommended(context context.Context, userID string, categoryIDs []int64, limit, offset int) ([]*manga.Manga, int, error) {
	query := `SELECT ` + manga.Columns + `, COUNT(*) OVER() AS total
		FROM core.manga m
		WHERE EXISTS (
			SELECT 1 FROM core.mangacategory mc
			WHERE mc.mangaid = m.id AND mc.categoryid = ANY($2)
		)
		AND NOT EXISTS (
			SELECT 1 FROM library.viewhistory vh
			WHERE vh.userid = $1 AND vh.mangaid = m.id
		)
		ORDER BY m.likecount DESC, m.viewcount DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.db.Query(context, query, userID, categoryIDs, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recommended")
	}

	return manga.ScanTotal(rows, "list_recommended")
}

/*
RecordView inserts the history row and bumps the counter in one transaction.
*/
func (repository *PostgresRepository) RecordView(context context.Context, userID string, mangaID int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_record_view")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context,
		`INSERT INTO library.viewhistory (userid, mangaid) VALUES ($1, $2)`, userID, mangaID); err != nil {
		return dberr.WrapAs(err, "insert_view_history", manga.ErrNotFound)
	}

	if _, err := transaction.Exec(context,
		`UPDATE core.manga SET viewcount = viewcount + 1 WHERE id = $1`, mangaID); err != nil {
		return dberr.Wrap(err, "increment_view_count")
	}

	return dberr.Wrap(transaction.Commit(context), "commit_record_view")
}
