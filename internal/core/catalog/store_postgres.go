// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// likePattern escapes LIKE wildcards in term and wraps it for a substring match.
func likePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}

/*
Search builds the filter dynamically. Each name token becomes its own EXISTS
clause so tokens are ANDed while name/description are ORed within a token.
*/
func (repository *PostgresRepository) Search(context context.Context, filter Filter, limit, offset int) ([]*manga.Manga, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + manga.Columns + `, COUNT(*) OVER() AS total FROM core.manga m WHERE TRUE`)

	args := []any{}
	argID := 1

	for _, token := range filter.Tokens {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM core.mangatranslation st
				WHERE st.mangaid = m.id AND (st.name ILIKE $%d OR st.description ILIKE $%d)
			)`, argID, argID))
		args = append(args, likePattern(token))
		argID++
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM core.mangacategory mc
				JOIN core.category c ON c.id = mc.categoryid
				WHERE mc.mangaid = m.id AND LOWER(c.name) = LOWER($%d)
			)`, argID))
		args = append(args, filter.Category)
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND LOWER(m.type) = LOWER($%d)", argID))
		args = append(args, filter.Type)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.createdat DESC, m.id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_manga")
	}

	return manga.ScanTotal(rows, "search_manga")
}

func (repository *PostgresRepository) SearchByCategory(context context.Context, name string, limit, offset int) ([]*manga.Manga, int, error) {
	query := `
		SELECT ` + manga.Columns + `, COUNT(*) OVER() AS total
		FROM core.manga m
		WHERE EXISTS (
			SELECT 1 FROM core.mangacategory mc
			JOIN core.category c ON c.id = mc.categoryid
			WHERE mc.mangaid = m.id AND c.name ILIKE $1
		)
		ORDER BY m.createdat DESC, m.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, likePattern(name), limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_categories")
	}

	return manga.ScanTotal(rows, "search_categories")
}

func (repository *PostgresRepository) ListCategories(context context.Context) ([]Category, error) {
	rows, err := repository.db.Query(context, `SELECT id, name FROM core.category ORDER BY name ASC`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), "list_categories")
}

func (repository *PostgresRepository) ListLanguages(context context.Context) ([]Language, error) {
	rows, err := repository.db.Query(context, `SELECT code, name FROM core.language ORDER BY name ASC`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	defer rows.Close()

	languages := make([]Language, 0)
	for rows.Next() {
		var lang Language
		if err := rows.Scan(&lang.Code, &lang.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_language")
		}
		languages = append(languages, lang)
	}

	return languages, dberr.Wrap(rows.Err(), "list_languages")
}
