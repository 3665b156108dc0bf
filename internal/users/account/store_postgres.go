// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/platform/dberr"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const profileColumns = `id, username, displayname, avatarurl, role, createdat`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	if err := row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.AvatarURL, &p.Role, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Profile, error) {
	if !uuid.Valid(id) {
		return nil, ErrUserNotFound
	}

	profile, err := scanProfile(repository.db.QueryRow(context, `SELECT `+profileColumns+` FROM users.account WHERE id = $1`, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "find_account", ErrUserNotFound)
	}
	return profile, nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, changes Changes) (*Profile, error) {
	profile, err := scanProfile(repository.db.QueryRow(context, `
		UPDATE users.account SET
			displayname = COALESCE($2, displayname),
			avatarurl = COALESCE($3, avatarurl)
		WHERE id = $1
		RETURNING `+profileColumns,
		id, changes.DisplayName, changes.AvatarURL,
	))
	if err != nil {
		return nil, dberr.WrapAs(err, "update_account", ErrUserNotFound)
	}
	return profile, nil
}

func (repository *PostgresRepository) PreferredCategories(context context.Context, userID string) ([]catalog.Category, error) {
	rows, err := repository.db.Query(context, `
		SELECT c.id, c.name
		FROM users.preferredcategory p
		JOIN core.category c ON c.id = p.categoryid
		WHERE p.userid = $1
		ORDER BY c.name`, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_preferred_categories")
	}
	defer rows.Close()

	categories := make([]catalog.Category, 0)
	for rows.Next() {
		var category catalog.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_preferred_category")
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), "list_preferred_categories")
}

func (repository *PostgresRepository) ReplacePreferredCategories(context context.Context, userID string, categoryIDs []int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_replace_categories")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context, `DELETE FROM users.preferredcategory WHERE userid = $1`, userID); err != nil {
		return dberr.Wrap(err, "clear_preferred_categories")
	}

	if len(categoryIDs) > 0 {
		_, err := transaction.Exec(context, `
			INSERT INTO users.preferredcategory (userid, categoryid)
			SELECT $1, unnest($2::bigint[])`, userID, categoryIDs)
		if err != nil {
			return dberr.WrapAs(err, "insert_preferred_categories", ErrCategoryNotFound)
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_replace_categories")
}
