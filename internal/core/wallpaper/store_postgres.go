// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wallpaper

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangashelf/internal/platform/dberr"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed wallpaper store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// wallpaperColumns aggregates images as a JSON array ordered by position.
const wallpaperColumns = `
	w.id, w.name, w.cover, w.source,
	COALESCE((
		SELECT json_agg(json_build_object('id', i.id, 'url', i.url, 'position', i.position) ORDER BY i.position)
		FROM core.wallpaperimage i
		WHERE i.wallpaperid = w.id
	), '[]'::json) AS images,
	w.createdat, w.updatedat`

func scanWallpaper(row pgx.Row, extra ...any) (*Wallpaper, error) {
	var (
		w      Wallpaper
		images []byte
	)
	dest := []any{&w.ID, &w.Name, &w.Cover, &w.Source, &images, &w.CreatedAt, &w.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &w.Images); err != nil {
		return nil, err
	}
	return &w, nil
}

func insertImages(context context.Context, transaction pgx.Tx, wallpaperID string, images []Image) error {
	for _, image := range images {
		_, err := transaction.Exec(context,
			`INSERT INTO core.wallpaperimage (id, wallpaperid, url, position) VALUES ($1, $2, $3, $4)`,
			image.ID, wallpaperID, image.URL, image.Position,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_wallpaper_image")
		}
	}
	return nil
}

func (repository *PostgresRepository) Create(context context.Context, wallpapers ...*Wallpaper) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_wallpaper")
	}
	defer func() { _ = transaction.Rollback(context) }()

	for _, wallpaper := range wallpapers {
		_, err := transaction.Exec(context, `
			INSERT INTO core.wallpaper (id, name, cover, source, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			wallpaper.ID, wallpaper.Name, wallpaper.Cover, wallpaper.Source, wallpaper.CreatedAt, wallpaper.UpdatedAt,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_wallpaper")
		}

		if err := insertImages(context, transaction, wallpaper.ID, wallpaper.Images); err != nil {
			return err
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_wallpaper")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Wallpaper, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	wallpaper, err := scanWallpaper(repository.db.QueryRow(context, `SELECT `+wallpaperColumns+` FROM core.wallpaper w WHERE w.id = $1`, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "find_wallpaper", ErrNotFound)
	}
	return wallpaper, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Wallpaper, int, error) {
	rows, err := repository.db.Query(context, `
		SELECT `+wallpaperColumns+`, COUNT(*) OVER() AS total
		FROM core.wallpaper w
		ORDER BY w.createdat DESC, w.id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_wallpapers")
	}
	defer rows.Close()

	wallpapers := make([]*Wallpaper, 0)
	total := 0

	for rows.Next() {
		wallpaper, err := scanWallpaper(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_wallpaper")
		}
		wallpapers = append(wallpapers, wallpaper)
	}

	return wallpapers, total, dberr.Wrap(rows.Err(), "list_wallpapers")
}

func (repository *PostgresRepository) Update(context context.Context, id string, changes Changes) (*Wallpaper, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_wallpaper")
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, `
		UPDATE core.wallpaper SET
			name = COALESCE($2, name),
			cover = COALESCE($3, cover),
			updatedat = NOW()
		WHERE id = $1`, id, changes.Name, changes.Cover)
	if err != nil {
		return nil, dberr.Wrap(err, "update_wallpaper")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if changes.Images != nil {
		if _, err := transaction.Exec(context, `DELETE FROM core.wallpaperimage WHERE wallpaperid = $1`, id); err != nil {
			return nil, dberr.Wrap(err, "clear_wallpaper_images")
		}
		if err := insertImages(context, transaction, id, NewImages(*changes.Images...)); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_wallpaper")
	}

	return repository.FindByID(context, id)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return ErrNotFound
	}

	tag, err := repository.db.Exec(context, `DELETE FROM core.wallpaper WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_wallpaper")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) AppendImage(context context.Context, wallpaperID string, image Image) (*Image, error) {
	err := repository.db.QueryRow(context, `
		INSERT INTO core.wallpaperimage (id, wallpaperid, url, position)
		SELECT $1, $2, $3, COALESCE(MAX(position) + 1, 0)
		FROM core.wallpaperimage
		WHERE wallpaperid = $2
		RETURNING position`,
		image.ID, wallpaperID, image.URL,
	).Scan(&image.Position)
	if err != nil {
		return nil, dberr.WrapAs(err, "append_wallpaper_image", ErrNotFound)
	}
	return &image, nil
}
