// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangashelf/internal/platform/dberr"
)

// # Shared Projection

// Columns is the select list every store uses to load a [Manga] aliased as "m".
// Translations are aggregated into a JSON array to avoid N+1 lookups.
const Columns = `
	m.id, m.uuid, m.cover, m.status, m.type, m.releasedat,
	m.viewcount, m.likecount, m.commentcount, m.createdat,
	COALESCE((
		SELECT json_agg(json_build_object('language', t.language, 'name', t.name, 'description', t.description) ORDER BY t.id)
		FROM core.mangatranslation t
		WHERE t.mangaid = m.id
	), '[]'::json) AS translations`

// Scan reads one row produced by [Columns] followed by any extra destinations
// (a window COUNT, a joined flag).
func Scan(row pgx.Row, extra ...any) (*Manga, error) {
	var m Manga
	var translationsJSON []byte

	dest := []any{
		&m.ID, &m.UUID, &m.Cover, &m.Status, &m.Type, &m.ReleasedAt,
		&m.ViewCount, &m.LikeCount, &m.CommentCount, &m.CreatedAt,
		&translationsJSON,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(translationsJSON, &m.Translations); err != nil {
		return nil, fmt.Errorf("manga: failed to decode translations: %w", err)
	}

	return &m, nil
}

// ScanTotal collects rows of [Columns] plus a trailing COUNT(*) OVER() column.
func ScanTotal(rows pgx.Rows, action string) ([]*Manga, int, error) {
	defer rows.Close()

	mangas := make([]*Manga, 0)
	total := 0

	for rows.Next() {
		m, err := Scan(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, action)
		}
		mangas = append(mangas, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}

	return mangas, total, nil
}

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed manga store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM core.manga WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "manga_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Manga, error) {
	row := repository.db.QueryRow(context, `SELECT `+Columns+` FROM core.manga m WHERE m.id = $1`, id)

	m, err := Scan(row)
	if err != nil {
		return nil, dberr.WrapAs(err, "find_manga", ErrNotFound)
	}
	return m, nil
}
