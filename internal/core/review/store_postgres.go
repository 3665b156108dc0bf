// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `
	r.id, r.userid, COALESCE(a.username, ''), r.mangaid, r.title, r.content,
	r.rating, r.art, r.story, r.characters, r.worldbuilding,
	r.pacing, r.emotion, r.originality, r.dialogues,
	r.upvotes, r.downvotes, r.createdat, r.updatedat`

const reviewFrom = `
	FROM social.review r
	LEFT JOIN users.account a ON a.id = r.userid`

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	var r Review
	dest := []any{
		&r.ID, &r.UserID, &r.Username, &r.MangaID, &r.Title, &r.Content,
		&r.Rating, &r.Art, &r.Story, &r.Characters, &r.Worldbuilding,
		&r.Pacing, &r.Emotion, &r.Originality, &r.Dialogues,
		&r.Upvotes, &r.Downvotes, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &r, nil
}

// # Review CRUD

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	_, err := repository.db.Exec(context, `
		INSERT INTO social.review (
			id, userid, mangaid, title, content,
			rating, art, story, characters, worldbuilding,
			pacing, emotion, originality, dialogues,
			createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		review.ID, review.UserID, review.MangaID, review.Title, review.Content,
		review.Rating, review.Art, review.Story, review.Characters, review.Worldbuilding,
		review.Pacing, review.Emotion, review.Originality, review.Dialogues,
		review.CreatedAt, review.UpdatedAt,
	)

	wrapped := dberr.WrapAs(err, "insert_review", manga.ErrNotFound)
	if errors.Is(wrapped, dberr.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return wrapped
}

func (repository *PostgresRepository) FindByID(context context.Context, id string, withVotes bool) (*Review, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	review, err := scanReview(repository.db.QueryRow(context, `SELECT `+reviewColumns+reviewFrom+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "find_review", ErrNotFound)
	}

	if withVotes {
		if review.Votes, err = repository.votes(context, id); err != nil {
			return nil, err
		}
	}
	return review, nil
}

func (repository *PostgresRepository) votes(context context.Context, reviewID string) ([]Vote, error) {
	rows, err := repository.db.Query(context, `
		SELECT userid, reviewid, isupvote, createdat
		FROM social.reviewvote
		WHERE reviewid = $1
		ORDER BY createdat ASC`, reviewID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_review_votes")
	}
	defer rows.Close()

	votes := make([]Vote, 0)
	for rows.Next() {
		var vote Vote
		if err := rows.Scan(&vote.UserID, &vote.ReviewID, &vote.IsUpvote, &vote.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_review_vote")
		}
		votes = append(votes, vote)
	}

	return votes, dberr.Wrap(rows.Err(), "list_review_votes")
}

func (repository *PostgresRepository) FindByUserAndManga(context context.Context, userID string, mangaID int64) (*Review, error) {
	row := repository.db.QueryRow(context, `SELECT `+reviewColumns+reviewFrom+` WHERE r.userid = $1 AND r.mangaid = $2`, userID, mangaID)

	review, err := scanReview(row)
	if err != nil {
		return nil, dberr.WrapAs(err, "find_user_review", ErrNotFound)
	}
	return review, nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, changes Changes) (*Review, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}

	tag, err := repository.db.Exec(context, `
		UPDATE social.review SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			rating = COALESCE($4, rating),
			art = COALESCE($5, art),
			story = COALESCE($6, story),
			characters = COALESCE($7, characters),
			worldbuilding = COALESCE($8, worldbuilding),
			pacing = COALESCE($9, pacing),
			emotion = COALESCE($10, emotion),
			originality = COALESCE($11, originality),
			dialogues = COALESCE($12, dialogues),
			updatedat = NOW()
		WHERE id = $1`,
		id, changes.Title, changes.Content,
		changes.Rating, changes.Art, changes.Story, changes.Characters, changes.Worldbuilding,
		changes.Pacing, changes.Emotion, changes.Originality, changes.Dialogues,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return repository.FindByID(context, id, false)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return ErrNotFound
	}

	tag, err := repository.db.Exec(context, `DELETE FROM social.review WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListByManga(context context.Context, mangaID int64, limit, offset int) ([]*Review, int, error) {
	rows, err := repository.db.Query(context, `SELECT `+reviewColumns+`, COUNT(*) OVER() AS total`+reviewFrom+`
		WHERE r.mangaid = $1
		ORDER BY r.upvotes DESC, r.createdat DESC
		LIMIT $2 OFFSET $3`, mangaID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_manga_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	total := 0

	for rows.Next() {
		review, err := scanReview(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, dberr.Wrap(rows.Err(), "list_manga_reviews")
}

// # Voting

/*
ApplyVote performs one toggle atomically.

Description: The review row is locked first so concurrent toggles from
different users serialize on the counters; the vote row is then read under
the same transaction and the transition from [ResolveVote] is applied.
*/
func (repository *PostgresRepository) ApplyVote(context context.Context, userID, reviewID string, up bool) (*Review, VoteState, error) {
	if !uuid.Valid(reviewID) {
		return nil, VoteNone, ErrNotFound
	}

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, VoteNone, dberr.Wrap(err, "begin_review_vote")
	}
	defer func() { _ = transaction.Rollback(context) }()

	var locked string
	err = transaction.QueryRow(context, `SELECT id FROM social.review WHERE id = $1 FOR UPDATE`, reviewID).Scan(&locked)
	if err != nil {
		return nil, VoteNone, dberr.WrapAs(err, "lock_review", ErrNotFound)
	}

	current := VoteNone
	var isUpvote bool
	err = transaction.QueryRow(context,
		`SELECT isupvote FROM social.reviewvote WHERE userid = $1 AND reviewid = $2`, userID, reviewID).Scan(&isUpvote)
	switch {
	case err == nil && isUpvote:
		current = VoteUp
	case err == nil:
		current = VoteDown
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, VoteNone, dberr.Wrap(err, "find_review_vote")
	}

	next := ResolveVote(current, up)

	switch {
	case next.Next == VoteNone:
		_, err = transaction.Exec(context, `DELETE FROM social.reviewvote WHERE userid = $1 AND reviewid = $2`, userID, reviewID)
	case current == VoteNone:
		_, err = transaction.Exec(context,
			`INSERT INTO social.reviewvote (userid, reviewid, isupvote) VALUES ($1, $2, $3)`, userID, reviewID, next.Next == VoteUp)
	default:
		_, err = transaction.Exec(context,
			`UPDATE social.reviewvote SET isupvote = $3, createdat = NOW() WHERE userid = $1 AND reviewid = $2`, userID, reviewID, next.Next == VoteUp)
	}
	if err != nil {
		return nil, VoteNone, dberr.Wrap(err, "write_review_vote")
	}

	_, err = transaction.Exec(context, `
		UPDATE social.review SET
			upvotes = GREATEST(upvotes + $2, 0),
			downvotes = GREATEST(downvotes + $3, 0)
		WHERE id = $1`, reviewID, next.UpvoteDelta, next.DownvoteDelta)
	if err != nil {
		return nil, VoteNone, dberr.Wrap(err, "adjust_review_counters")
	}

	review, err := scanReview(transaction.QueryRow(context, `SELECT `+reviewColumns+reviewFrom+` WHERE r.id = $1`, reviewID))
	if err != nil {
		return nil, VoteNone, dberr.Wrap(err, "reload_review")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, VoteNone, dberr.Wrap(err, "commit_review_vote")
	}

	return review, next.Next, nil
}

// # Aggregates

func (repository *PostgresRepository) Totals(context context.Context, mangaID int64) (Totals, error) {
	var totals Totals
	sums := &totals.Sums

	err := repository.db.QueryRow(context, `
		SELECT COUNT(*),
			COALESCE(SUM(rating), 0)::float8, COALESCE(SUM(art), 0)::float8,
			COALESCE(SUM(story), 0)::float8, COALESCE(SUM(characters), 0)::float8,
			COALESCE(SUM(worldbuilding), 0)::float8, COALESCE(SUM(pacing), 0)::float8,
			COALESCE(SUM(emotion), 0)::float8, COALESCE(SUM(originality), 0)::float8,
			COALESCE(SUM(dialogues), 0)::float8
		FROM social.review
		WHERE mangaid = $1`, mangaID).Scan(
		&totals.Count,
		&sums.Rating, &sums.Art, &sums.Story, &sums.Characters, &sums.Worldbuilding,
		&sums.Pacing, &sums.Emotion, &sums.Originality, &sums.Dialogues,
	)
	if err != nil {
		return Totals{}, dberr.Wrap(err, "review_totals")
	}

	return totals, nil
}
