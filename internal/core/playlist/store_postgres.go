// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"

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

// NewPostgresRepository constructs a PostgreSQL backed playlist store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// playlistColumns aggregates the item IDs in position order.
const playlistColumns = `
	p.id, p.userid, p.name, p.description, p.cover, p.ispublic,
	COALESCE((
		SELECT array_agg(i.mangaid ORDER BY i.position)
		FROM library.playlistitem i
		WHERE i.playlistid = p.id
	), '{}') AS mangaids,
	p.createdat, p.updatedat`

func scanPlaylist(row pgx.Row, extra ...any) (*Playlist, error) {
	var p Playlist
	dest := []any{&p.ID, &p.UserID, &p.Name, &p.Description, &p.Cover, &p.IsPublic, &p.MangaIDs, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if p.MangaIDs == nil {
		p.MangaIDs = []int64{}
	}
	return &p, nil
}

// replaceItems rewrites the item list so positions follow the slice order.
func replaceItems(context context.Context, transaction pgx.Tx, playlistID string, mangaIDs []int64) error {
	if _, err := transaction.Exec(context, `DELETE FROM library.playlistitem WHERE playlistid = $1`, playlistID); err != nil {
		return dberr.Wrap(err, "clear_playlist_items")
	}
	if len(mangaIDs) == 0 {
		return nil
	}

	_, err := transaction.Exec(context, `
		INSERT INTO library.playlistitem (playlistid, mangaid, position)
		SELECT $1, item.mangaid, item.position
		FROM unnest($2::bigint[]) WITH ORDINALITY AS item(mangaid, position)`,
		playlistID, mangaIDs)
	return dberr.WrapAs(err, "insert_playlist_items", manga.ErrNotFound)
}

func (repository *PostgresRepository) Create(context context.Context, playlist *Playlist) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_playlist")
	}
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, `
		INSERT INTO library.playlist (id, userid, name, description, cover, ispublic, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		playlist.ID, playlist.UserID, playlist.Name, playlist.Description, playlist.Cover,
		playlist.IsPublic, playlist.CreatedAt, playlist.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_playlist")
	}

	if err := replaceItems(context, transaction, playlist.ID, playlist.MangaIDs); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_playlist")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Playlist, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	playlist, err := scanPlaylist(repository.db.QueryRow(context, `SELECT `+playlistColumns+` FROM library.playlist p WHERE p.id = $1`, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "find_playlist", ErrNotFound)
	}
	return playlist, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Playlist, int, error) {
	rows, err := repository.db.Query(context, `
		SELECT `+playlistColumns+`, COUNT(*) OVER() AS total
		FROM library.playlist p
		WHERE p.userid = $1
		ORDER BY p.createdat DESC, p.id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_playlists")
	}
	defer rows.Close()

	playlists := make([]*Playlist, 0)
	total := 0

	for rows.Next() {
		playlist, err := scanPlaylist(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_playlist")
		}
		playlists = append(playlists, playlist)
	}

	return playlists, total, dberr.Wrap(rows.Err(), "list_playlists")
}

func (repository *PostgresRepository) Update(context context.Context, id string, changes Changes) (*Playlist, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_playlist")
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, `
		UPDATE library.playlist SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			cover = COALESCE($4, cover),
			ispublic = COALESCE($5, ispublic),
			updatedat = NOW()
		WHERE id = $1`,
		id, changes.Name, changes.Description, changes.Cover, changes.IsPublic,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_playlist")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if changes.MangaIDs != nil {
		if err := replaceItems(context, transaction, id, *changes.MangaIDs); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_playlist")
	}

	return repository.FindByID(context, id)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM library.playlist WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_playlist")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
