// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/internal/core/review"
	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/pkg/pointer"
)

// # Fakes

type memoryRepository struct {
	reviews map[string]*review.Review
	votes   map[string]map[string]review.VoteState
	creates int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{reviews: map[string]*review.Review{}, votes: map[string]map[string]review.VoteState{}}
}

func (m *memoryRepository) Create(_ context.Context, r *review.Review) error {
	m.creates++
	copied := *r
	m.reviews[r.ID] = &copied
	return nil
}

func (m *memoryRepository) FindByID(_ context.Context, id string, withVotes bool) (*review.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, review.ErrNotFound
	}
	copied := *r
	if withVotes {
		copied.Votes = []review.Vote{}
		for userID, state := range m.votes[id] {
			copied.Votes = append(copied.Votes, review.Vote{UserID: userID, ReviewID: id, IsUpvote: state == review.VoteUp})
		}
	}
	return &copied, nil
}

func (m *memoryRepository) FindByUserAndManga(_ context.Context, userID string, mangaID int64) (*review.Review, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.MangaID == mangaID {
			return r, nil
		}
	}
	return nil, review.ErrNotFound
}

func (m *memoryRepository) Update(ctx context.Context, id string, changes review.Changes) (*review.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, review.ErrNotFound
	}
	if changes.Title != nil {
		r.Title = *changes.Title
	}
	if changes.Story != nil {
		r.Story = *changes.Story
	}
	return m.FindByID(ctx, id, false)
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return review.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *memoryRepository) ListByManga(_ context.Context, mangaID int64, _, _ int) ([]*review.Review, int, error) {
	out := make([]*review.Review, 0)
	for _, r := range m.reviews {
		if r.MangaID == mangaID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (m *memoryRepository) ApplyVote(_ context.Context, userID, reviewID string, up bool) (*review.Review, review.VoteState, error) {
	r, ok := m.reviews[reviewID]
	if !ok {
		return nil, review.VoteNone, review.ErrNotFound
	}
	if m.votes[reviewID] == nil {
		m.votes[reviewID] = map[string]review.VoteState{}
	}

	next := review.ResolveVote(m.votes[reviewID][userID], up)
	if next.Next == review.VoteNone {
		delete(m.votes[reviewID], userID)
	} else {
		m.votes[reviewID][userID] = next.Next
	}
	r.Upvotes += next.UpvoteDelta
	r.Downvotes += next.DownvoteDelta

	copied := *r
	return &copied, next.Next, nil
}

func (m *memoryRepository) Totals(_ context.Context, mangaID int64) (review.Totals, error) {
	var totals review.Totals
	for _, r := range m.reviews {
		if r.MangaID != mangaID {
			continue
		}
		totals.Count++
		totals.Sums.Rating += r.Rating
		totals.Sums.Art += r.Art
		totals.Sums.Story += r.Story
		totals.Sums.Characters += r.Characters
		totals.Sums.Worldbuilding += r.Worldbuilding
		totals.Sums.Pacing += r.Pacing
		totals.Sums.Emotion += r.Emotion
		totals.Sums.Originality += r.Originality
		totals.Sums.Dialogues += r.Dialogues
	}
	return totals, nil
}

type fakeMangas map[int64]bool

func (f fakeMangas) Exists(_ context.Context, id int64) (bool, error) { return f[id], nil }

func (f fakeMangas) FindByID(_ context.Context, id int64) (*manga.Manga, error) {
	return &manga.Manga{ID: id}, nil
}

func newService(repo *memoryRepository) *review.Service {
	return review.NewService(repo, fakeMangas{1: true, 2: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ratings(value float64) review.Ratings {
	return review.Ratings{
		Rating: value, Art: value, Story: value, Characters: value, Worldbuilding: value,
		Pacing: value, Emotion: value, Originality: value, Dialogues: value,
	}
}

// # Tests

/*
TestCreate_RatingBounds verifies any out-of-range rating fails with no write.
*/
func TestCreate_RatingBounds(t *testing.T) {
	for _, bad := range []float64{0, 0.5, 10.5, -3} {
		repo := newMemoryRepository()
		input := ratings(5)
		input.Pacing = bad

		_, err := newService(repo).Create(context.Background(), "u1", review.CreateInput{MangaID: 1, Ratings: input})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeValidation, ae.Code)
		assert.Equal(t, review.RatingRangeMessage, ae.Message)
		assert.Equal(t, "pacing", ae.Details[0].Field)
		assert.Zero(t, repo.creates)
	}
}

/*
TestCreate_Duplicate verifies a second review of the same manga is a conflict.
*/
func TestCreate_Duplicate(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, "u1", review.CreateInput{MangaID: 1, Ratings: ratings(8)})
	require.NoError(t, err)

	_, err = service.Create(ctx, "u1", review.CreateInput{MangaID: 1, Ratings: ratings(9)})
	assert.ErrorIs(t, err, review.ErrAlreadyExists)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Create(ctx, "u1", review.CreateInput{MangaID: 77, Ratings: ratings(9)})
	assert.ErrorIs(t, err, manga.ErrNotFound)
}

/*
TestUpdate_EnforcesBounds verifies provided ratings are range checked on update.
*/
func TestUpdate_EnforcesBounds(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "u1", review.CreateInput{MangaID: 1, Ratings: ratings(6)})
	require.NoError(t, err)

	_, err = service.Update(ctx, created.ID, review.Changes{Story: pointer.To(11.0)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	updated, err := service.Update(ctx, created.ID, review.Changes{Story: pointer.To(9.0), Title: pointer.To("Ótimo")})
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.Story)
	assert.Equal(t, 6.0, updated.Art)
	assert.Equal(t, "Ótimo", updated.Title)
}

/*
TestToggleUpvote_Idempotence verifies two upvotes restore the original count.
*/
func TestToggleUpvote_Idempotence(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "author", review.CreateInput{MangaID: 1, Ratings: ratings(7)})
	require.NoError(t, err)

	first, err := service.ToggleUpvote(ctx, "u2", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Review.Upvotes)
	require.NotNil(t, first.Vote)
	assert.True(t, *first.Vote)

	second, err := service.ToggleUpvote(ctx, "u2", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Review.Upvotes)
	assert.Nil(t, second.Vote)
}

/*
TestToggle_FlipIsExclusive verifies switching direction never leaves both votes.
*/
func TestToggle_FlipIsExclusive(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "author", review.CreateInput{MangaID: 1, Ratings: ratings(7)})
	require.NoError(t, err)

	_, err = service.ToggleUpvote(ctx, "u2", created.ID)
	require.NoError(t, err)

	flipped, err := service.ToggleDownvote(ctx, "u2", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, flipped.Review.Upvotes)
	assert.Equal(t, 1, flipped.Review.Downvotes)
	assert.False(t, *flipped.Vote)

	withVotes, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, withVotes.Votes, 1)
	assert.False(t, withVotes.Votes[0].IsUpvote)

	_, err = service.ToggleUpvote(ctx, "u2", "missing")
	assert.ErrorIs(t, err, review.ErrNotFound)
}

/*
TestOverview verifies rounding and the zero-review state.
*/
func TestOverview(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	empty, err := service.Overview(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalReviews)
	assert.Equal(t, review.Ratings{}, empty.Ratings)

	for i, value := range []float64{7, 8, 8} {
		_, err := service.Create(ctx, string(rune('a'+i)), review.CreateInput{MangaID: 1, Ratings: ratings(value)})
		require.NoError(t, err)
	}

	overview, err := service.Overview(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.TotalReviews)
	assert.Equal(t, 7.67, overview.Rating)
	assert.Equal(t, 7.67, overview.Dialogues)
}

/*
TestDelete verifies hard deletion.
*/
func TestDelete(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "u1", review.CreateInput{MangaID: 1, Ratings: ratings(5)})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.ErrorIs(t, service.Delete(ctx, created.ID), review.ErrNotFound)
}
