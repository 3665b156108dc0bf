// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"errors"
	"time"

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

// NewPostgresRepository constructs a PostgreSQL backed collection store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const collectionColumns = `
	c.id, c.ownerid, c.name, c.cover, c.description, c.status,
	(SELECT COUNT(*) FROM library.collectionmanga cm WHERE cm.collectionid = c.id) AS mangacount,
	c.createdat, c.updatedat`

func scanCollection(row pgx.Row, extra ...any) (*Collection, error) {
	var c Collection
	dest := []any{&c.ID, &c.OwnerID, &c.Name, &c.Cover, &c.Description, &c.Status, &c.MangaCount, &c.CreatedAt, &c.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// # Collections

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Collection, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	row := repository.db.QueryRow(context, `SELECT `+collectionColumns+` FROM library.collection c WHERE c.id = $1`, id)

	collection, err := scanCollection(row)
	if err != nil {
		return nil, dberr.WrapAs(err, "find_collection", ErrNotFound)
	}
	return collection, nil
}

/*
Create persists a new collection.

Parameters:
  - context: context.Context
  - collection: *Collection (ID, timestamps are filled by the caller)
  - mangaIDs: []int64 (optional initial members)

Returns:
  - error: [manga.ErrNotFound] when an initial manga does not exist
*/
func (repository *PostgresRepository) Create(context context.Context, collection *Collection, mangaIDs []int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_collection")
	}
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, `
		INSERT INTO library.collection (id, ownerid, name, cover, description, status, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		collection.ID, collection.OwnerID, collection.Name, collection.Cover, collection.Description,
		string(collection.Status), collection.CreatedAt, collection.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_collection")
	}

	if len(mangaIDs) > 0 {
		_, err = transaction.Exec(context, `
			INSERT INTO library.collectionmanga (collectionid, mangaid, addedby)
			SELECT $1, id, $3 FROM unnest($2::bigint[]) AS id
			ON CONFLICT DO NOTHING`,
			collection.ID, mangaIDs, collection.OwnerID,
		)
		if err != nil {
			return dberr.WrapAs(err, "insert_initial_mangas", manga.ErrNotFound)
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_collection")
}

func (repository *PostgresRepository) Update(context context.Context, id string, changes Changes) (*Collection, error) {
	var status *string
	if changes.Status != nil {
		value := string(*changes.Status)
		status = &value
	}

	_, err := repository.db.Exec(context, `
		UPDATE library.collection SET
			name = COALESCE($2, name),
			cover = COALESCE($3, cover),
			description = COALESCE($4, description),
			status = COALESCE($5, status),
			updatedat = NOW()
		WHERE id = $1`,
		id, changes.Name, changes.Cover, changes.Description, status,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_collection")
	}

	return repository.FindByID(context, id)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM library.collection WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_collection")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

/*
ListForUser returns the user's owned and shared collections.

Description: A LEFT JOIN on the caller's collaborator row both filters and
annotates; owned collections come back with a nil collaborator.
*/
func (repository *PostgresRepository) ListForUser(context context.Context, userID string, limit, offset int) ([]*Listed, int, error) {
	query := `SELECT ` + collectionColumns + `,
			cc.id, cc.role, cc.createdat,
			COUNT(*) OVER() AS total
		FROM library.collection c
		LEFT JOIN library.collectioncollaborator cc ON cc.collectionid = c.id AND cc.userid = $1
		WHERE c.ownerid = $1 OR cc.id IS NOT NULL
		ORDER BY c.createdat DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_user_collections")
	}
	defer rows.Close()

	listed := make([]*Listed, 0)
	total := 0

	for rows.Next() {
		var (
			collaboratorID *string
			role           *string
			joinedAt       *time.Time
		)

		collection, err := scanCollection(rows, &collaboratorID, &role, &joinedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user_collection")
		}

		item := &Listed{Collection: *collection}
		if collaboratorID != nil {
			item.Collaborator = &Collaborator{
				ID:           *collaboratorID,
				CollectionID: collection.ID,
				UserID:       userID,
				Role:         Role(*role),
				CreatedAt:    *joinedAt,
			}
		}
		listed = append(listed, item)
	}

	return listed, total, dberr.Wrap(rows.Err(), "list_user_collections")
}

func (repository *PostgresRepository) ListPublic(context context.Context, limit, offset int) ([]*Collection, int, error) {
	query := `SELECT ` + collectionColumns + `, COUNT(*) OVER() AS total
		FROM library.collection c
		WHERE c.status = 'PUBLIC'
		ORDER BY c.createdat DESC, c.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_public_collections")
	}
	defer rows.Close()

	collections := make([]*Collection, 0)
	total := 0

	for rows.Next() {
		collection, err := scanCollection(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_public_collection")
		}
		collections = append(collections, collection)
	}

	return collections, total, dberr.Wrap(rows.Err(), "list_public_collections")
}

// # Memberships

func (repository *PostgresRepository) ListMangas(context context.Context, collectionID string) ([]Membership, error) {
	query := `SELECT ` + manga.Columns + `, cm.addedby, cm.addedat
		FROM library.collectionmanga cm
		JOIN core.manga m ON m.id = cm.mangaid
		WHERE cm.collectionid = $1
		ORDER BY cm.addedat DESC`

	rows, err := repository.db.Query(context, query, collectionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_collection_mangas")
	}
	defer rows.Close()

	memberships := make([]Membership, 0)
	for rows.Next() {
		var membership Membership

		m, err := manga.Scan(rows, &membership.AddedBy, &membership.AddedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_collection_manga")
		}
		membership.Manga = m
		memberships = append(memberships, membership)
	}

	return memberships, dberr.Wrap(rows.Err(), "list_collection_mangas")
}

func (repository *PostgresRepository) Inclusions(context context.Context, userID string, mangaID int64) ([]Inclusion, error) {
	rows, err := repository.db.Query(context, `
		SELECT c.id, c.name, c.status,
			EXISTS (
				SELECT 1 FROM library.collectionmanga cm
				WHERE cm.collectionid = c.id AND cm.mangaid = $2
			) AS isincluded
		FROM library.collection c
		WHERE c.ownerid = $1
		   OR EXISTS (
				SELECT 1 FROM library.collectioncollaborator cc
				WHERE cc.collectionid = c.id AND cc.userid = $1
		   )
		ORDER BY c.createdat DESC`, userID, mangaID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_inclusions")
	}
	defer rows.Close()

	inclusions := make([]Inclusion, 0)
	for rows.Next() {
		var inclusion Inclusion
		if err := rows.Scan(&inclusion.ID, &inclusion.Name, &inclusion.Status, &inclusion.IsIncluded); err != nil {
			return nil, dberr.Wrap(err, "scan_inclusion")
		}
		inclusions = append(inclusions, inclusion)
	}

	return inclusions, dberr.Wrap(rows.Err(), "list_inclusions")
}

func (repository *PostgresRepository) HasManga(context context.Context, collectionID string, mangaID int64) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `
		SELECT EXISTS (
			SELECT 1 FROM library.collectionmanga WHERE collectionid = $1 AND mangaid = $2
		)`, collectionID, mangaID).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "collection_has_manga")
	}
	return exists, nil
}

func (repository *PostgresRepository) AddManga(context context.Context, collectionID string, mangaID int64, addedBy string) error {
	_, err := repository.db.Exec(context, `
		INSERT INTO library.collectionmanga (collectionid, mangaid, addedby)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`, collectionID, mangaID, addedBy)
	if err != nil {
		return dberr.WrapAs(err, "add_collection_manga", manga.ErrNotFound)
	}

	_, err = repository.db.Exec(context, `UPDATE library.collection SET updatedat = NOW() WHERE id = $1`, collectionID)
	return dberr.Wrap(err, "touch_collection")
}

func (repository *PostgresRepository) RemoveManga(context context.Context, collectionID string, mangaID int64) error {
	_, err := repository.db.Exec(context,
		`DELETE FROM library.collectionmanga WHERE collectionid = $1 AND mangaid = $2`, collectionID, mangaID)
	if err != nil {
		return dberr.Wrap(err, "remove_collection_manga")
	}

	_, err = repository.db.Exec(context, `UPDATE library.collection SET updatedat = NOW() WHERE id = $1`, collectionID)
	return dberr.Wrap(err, "touch_collection")
}

// # Collaborators

func (repository *PostgresRepository) UserExists(context context.Context, userID string) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM users.account WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "user_exists")
	}
	return exists, nil
}

const collaboratorColumns = `cc.id, cc.collectionid, cc.userid, a.username, a.displayname, cc.role, cc.createdat`

func scanCollaborator(row pgx.Row) (*Collaborator, error) {
	var c Collaborator
	if err := row.Scan(&c.ID, &c.CollectionID, &c.UserID, &c.Username, &c.DisplayName, &c.Role, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (repository *PostgresRepository) FindCollaborator(context context.Context, collectionID, userID string) (*Collaborator, error) {
	if !uuid.Valid(collectionID) || !uuid.Valid(userID) {
		return nil, ErrCollaboratorNotFound
	}

	row := repository.db.QueryRow(context, `
		SELECT `+collaboratorColumns+`
		FROM library.collectioncollaborator cc
		JOIN users.account a ON a.id = cc.userid
		WHERE cc.collectionid = $1 AND cc.userid = $2`, collectionID, userID)

	collaborator, err := scanCollaborator(row)
	if err != nil {
		return nil, dberr.WrapAs(err, "find_collaborator", ErrCollaboratorNotFound)
	}
	return collaborator, nil
}

func (repository *PostgresRepository) AddCollaborator(context context.Context, collaborator *Collaborator) error {
	_, err := repository.db.Exec(context, `
		INSERT INTO library.collectioncollaborator (id, collectionid, userid, role, createdat)
		VALUES ($1, $2, $3, $4, $5)`,
		collaborator.ID, collaborator.CollectionID, collaborator.UserID, string(collaborator.Role), collaborator.CreatedAt,
	)

	wrapped := dberr.Wrap(err, "insert_collaborator")
	if errors.Is(wrapped, dberr.ErrDuplicate) {
		return ErrAlreadyCollaborator
	}
	return wrapped
}

func (repository *PostgresRepository) UpdateCollaboratorRole(context context.Context, collectionID, userID string, role Role) (*Collaborator, error) {
	if !uuid.Valid(collectionID) || !uuid.Valid(userID) {
		return nil, ErrCollaboratorNotFound
	}

	tag, err := repository.db.Exec(context, `
		UPDATE library.collectioncollaborator SET role = $3
		WHERE collectionid = $1 AND userid = $2`, collectionID, userID, string(role))
	if err != nil {
		return nil, dberr.Wrap(err, "update_collaborator_role")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrCollaboratorNotFound
	}

	return repository.FindCollaborator(context, collectionID, userID)
}

/*
RemoveCollaborator drops the collaborator's attributed mangas first, then the
collaborator row, inside one transaction.
*/
func (repository *PostgresRepository) RemoveCollaborator(context context.Context, collectionID, userID string) (int, error) {
	if !uuid.Valid(collectionID) || !uuid.Valid(userID) {
		return 0, ErrCollaboratorNotFound
	}

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_remove_collaborator")
	}
	defer func() { _ = transaction.Rollback(context) }()

	memberships, err := transaction.Exec(context,
		`DELETE FROM library.collectionmanga WHERE collectionid = $1 AND addedby = $2`, collectionID, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_collaborator_mangas")
	}

	tag, err := transaction.Exec(context,
		`DELETE FROM library.collectioncollaborator WHERE collectionid = $1 AND userid = $2`, collectionID, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_collaborator")
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrCollaboratorNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return 0, dberr.Wrap(err, "commit_remove_collaborator")
	}

	return int(memberships.RowsAffected()), nil
}

func (repository *PostgresRepository) ListCollaborators(context context.Context, collectionID string) ([]*Collaborator, error) {
	rows, err := repository.db.Query(context, `
		SELECT `+collaboratorColumns+`
		FROM library.collectioncollaborator cc
		JOIN users.account a ON a.id = cc.userid
		WHERE cc.collectionid = $1
		ORDER BY cc.createdat ASC`, collectionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_collaborators")
	}
	defer rows.Close()

	collaborators := make([]*Collaborator, 0)
	for rows.Next() {
		collaborator, err := scanCollaborator(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_collaborator")
		}
		collaborators = append(collaborators, collaborator)
	}

	return collaborators, dberr.Wrap(rows.Err(), "list_collaborators")
}
