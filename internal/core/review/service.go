// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/pkg/pagination"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// CreateInput is a decoded create request.
type CreateInput struct {
	MangaID int64
	Title   string
	Content string
	Ratings Ratings
}

// Page is one page of a manga's reviews.
type Page struct {
	Data       []*Review       `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// VoteResult is a review after a vote toggle plus the caller's new state.
type VoteResult struct {
	Review *Review `json:"review"`
	Vote   *bool   `json:"vote"`
}

// # Service Layer

// Service implements the review business rules.
type Service struct {
	repo   Repository
	mangas manga.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new review [Service].
func NewService(repo Repository, mangas manga.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, mangas: mangas, logger: logger, now: time.Now}
}

/*
Create stores a review by userID.

Steps:
 1. Every rating must be within [1, 10]; the first violation aborts with no write
 2. The manga must exist
 3. The user must not have reviewed this manga yet
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Review, error) {
	if err := input.Ratings.Validate(); err != nil {
		return nil, err
	}

	exists, err := service.mangas.Exists(context, input.MangaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, manga.ErrNotFound
	}

	_, err = service.repo.FindByUserAndManga(context, userID, input.MangaID)
	switch {
	case err == nil:
		return nil, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	now := service.now().UTC()
	review := &Review{
		ID:        uuid.New(),
		UserID:    userID,
		MangaID:   input.MangaID,
		Title:     strings.TrimSpace(input.Title),
		Content:   strings.TrimSpace(input.Content),
		Ratings:   input.Ratings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("user_id", userID),
		slog.Int64("manga_id", input.MangaID),
	)
	return review, nil
}

// Update applies a partial change. Provided ratings obey the same bound as on create.
func (service *Service) Update(context context.Context, reviewID string, changes Changes) (*Review, error) {
	if err := changes.Validate(); err != nil {
		return nil, err
	}
	return service.repo.Update(context, reviewID, changes)
}

// Delete hard-deletes a review.
func (service *Service) Delete(context context.Context, reviewID string) error {
	if err := service.repo.Delete(context, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.String("review_id", reviewID))
	return nil
}

// Get returns a review with its raw votes.
func (service *Service) Get(context context.Context, reviewID string) (*Review, error) {
	return service.repo.FindByID(context, reviewID, true)
}

// UserReview returns the caller's review of a manga.
func (service *Service) UserReview(context context.Context, userID string, mangaID int64) (*Review, error) {
	return service.repo.FindByUserAndManga(context, userID, mangaID)
}

// MangaReviews lists a manga's reviews by upvotes, then newest first.
func (service *Service) MangaReviews(context context.Context, mangaID int64, params pagination.Params) (*Page, error) {
	reviews, total, err := service.repo.ListByManga(context, mangaID, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return &Page{Data: reviews, Pagination: pagination.NewMeta(params, total)}, nil
}

// # Voting

// ToggleUpvote toggles the caller's upvote.
func (service *Service) ToggleUpvote(context context.Context, userID, reviewID string) (*VoteResult, error) {
	return service.toggle(context, userID, reviewID, true)
}

// ToggleDownvote toggles the caller's downvote.
func (service *Service) ToggleDownvote(context context.Context, userID, reviewID string) (*VoteResult, error) {
	return service.toggle(context, userID, reviewID, false)
}

func (service *Service) toggle(context context.Context, userID, reviewID string, up bool) (*VoteResult, error) {
	review, state, err := service.repo.ApplyVote(context, userID, reviewID, up)
	if err != nil {
		return nil, err
	}

	result := &VoteResult{Review: review}
	if state != VoteNone {
		isUp := state == VoteUp
		result.Vote = &isUp
	}

	service.logger.Info("review_vote_toggled",
		slog.String("review_id", reviewID),
		slog.String("user_id", userID),
		slog.Bool("up", up),
		slog.Int("state", int(state)),
	)
	return result, nil
}

// # Aggregates

/*
Overview averages every rating dimension of a manga's reviews, rounded to two
decimals. A manga without reviews reports zero everywhere.
*/
func (service *Service) Overview(context context.Context, mangaID int64) (*Overview, error) {
	totals, err := service.repo.Totals(context, mangaID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{MangaID: mangaID, TotalReviews: totals.Count}
	if totals.Count == 0 {
		return overview, nil
	}

	count := decimal.NewFromInt(int64(totals.Count))
	average := func(sum float64) float64 {
		return decimal.NewFromFloat(sum).Div(count).Round(2).InexactFloat64()
	}

	sums := totals.Sums
	overview.Ratings = Ratings{
		Rating:        average(sums.Rating),
		Art:           average(sums.Art),
		Story:         average(sums.Story),
		Characters:    average(sums.Characters),
		Worldbuilding: average(sums.Worldbuilding),
		Pacing:        average(sums.Pacing),
		Emotion:       average(sums.Emotion),
		Originality:   average(sums.Originality),
		Dialogues:     average(sums.Dialogues),
	}
	return overview, nil
}
