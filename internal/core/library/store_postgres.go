// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/platform/dberr"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed library store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, userid, mangaid, isread, isliked, isfollowed, iscomplete, createdat, updatedat`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.UserID, &e.MangaID, &e.IsRead, &e.IsLiked, &e.IsFollowed, &e.IsComplete, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// # Entry Mutation

/*
Mutate runs mutation inside a transaction.

Description: The existing row is locked with FOR UPDATE so concurrent toggles
serialize; a brand-new entry is inserted with ON CONFLICT so two first writes
race into one row.

Returns:
  - *Entry: The persisted entry, or nil when the mutation aborted
  - error: [ErrEntryNotFound], [manga.ErrNotFound] or database failures
*/
func (repository *PostgresRepository) Mutate(context context.Context, userID string, mangaID int64, mutation Mutation) (*Entry, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_library_mutation")
	}
	defer func() { _ = transaction.Rollback(context) }()

	row := transaction.QueryRow(context,
		`SELECT `+entryColumns+` FROM library.entry WHERE userid = $1 AND mangaid = $2 FOR UPDATE`, userID, mangaID)

	existing, err := scanEntry(row)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, dberr.Wrap(err, "lock_library_entry")
	}

	wasLiked := existing != nil && existing.IsLiked

	next, err := mutation(existing)
	if err != nil || next == nil {
		return nil, err
	}

	row = transaction.QueryRow(context, `
		INSERT INTO library.entry (id, userid, mangaid, isread, isliked, isfollowed, iscomplete)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (userid, mangaid) DO UPDATE SET
			isread = EXCLUDED.isread,
			isliked = EXCLUDED.isliked,
			isfollowed = EXCLUDED.isfollowed,
			iscomplete = EXCLUDED.iscomplete,
			updatedat = NOW()
		RETURNING `+entryColumns,
		uuid.New(), userID, mangaID, next.IsRead, next.IsLiked, next.IsFollowed, next.IsComplete)

	saved, err := scanEntry(row)
	if err != nil {
		return nil, dberr.WrapAs(err, "save_library_entry", manga.ErrNotFound)
	}

	if delta := likeDelta(wasLiked, saved.IsLiked); delta != 0 {
		if _, err := transaction.Exec(context,
			`UPDATE core.manga SET likecount = GREATEST(likecount + $2, 0) WHERE id = $1`, mangaID, delta); err != nil {
			return nil, dberr.Wrap(err, "adjust_like_count")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_library_mutation")
	}

	return saved, nil
}

func likeDelta(before, after bool) int {
	switch {
	case !before && after:
		return 1
	case before && !after:
		return -1
	}
	return 0
}

// # Entry Retrieval

func (repository *PostgresRepository) Find(context context.Context, userID string, mangaID int64) (*Entry, error) {
	row := repository.db.QueryRow(context,
		`SELECT `+entryColumns+` FROM library.entry WHERE userid = $1 AND mangaid = $2`, userID, mangaID)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, dberr.WrapAs(err, "find_library_entry", ErrEntryNotFound)
	}
	return entry, nil
}

func (repository *PostgresRepository) Delete(context context.Context, userID string, mangaID int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_library_delete")
	}
	defer func() { _ = transaction.Rollback(context) }()

	var wasLiked bool
	err = transaction.QueryRow(context,
		`DELETE FROM library.entry WHERE userid = $1 AND mangaid = $2 RETURNING isliked`, userID, mangaID).Scan(&wasLiked)
	if err != nil {
		return dberr.WrapAs(err, "delete_library_entry", ErrEntryNotFound)
	}

	if wasLiked {
		if _, err := transaction.Exec(context,
			`UPDATE core.manga SET likecount = GREATEST(likecount - 1, 0) WHERE id = $1`, mangaID); err != nil {
			return dberr.Wrap(err, "adjust_like_count")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_library_delete")
}

// flagColumns whitelists the columns List may filter on.
var flagColumns = map[Flag]string{
	FlagRead:     "e.isread",
	FlagComplete: "e.iscomplete",
	FlagLiked:    "e.isliked",
	FlagFollowed: "e.isfollowed",
}

func (repository *PostgresRepository) List(context context.Context, userID string, flag Flag, limit, offset int) ([]*manga.Manga, int, error) {
	column, ok := flagColumns[flag]
	if !ok {
		return nil, 0, ErrInvalidType
	}

	query := `SELECT ` + manga.Columns + `, COUNT(*) OVER() AS total
		FROM library.entry e
		JOIN core.manga m ON m.id = e.mangaid
		WHERE e.userid = $1 AND ` + column + `
		ORDER BY e.updatedat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_library")
	}

	return manga.ScanTotal(rows, "list_library")
}
