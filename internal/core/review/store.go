// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines the data access contract for reviews.
type Repository interface {

	// Create inserts the review; a second review of the same manga by the same user is [ErrAlreadyExists].
	Create(context context.Context, review *Review) error

	// FindByID returns the review or [ErrNotFound]. withVotes attaches the raw vote list.
	FindByID(context context.Context, id string, withVotes bool) (*Review, error)

	// FindByUserAndManga returns the user's review of a manga or [ErrNotFound].
	FindByUserAndManga(context context.Context, userID string, mangaID int64) (*Review, error)

	Update(context context.Context, id string, changes Changes) (*Review, error)
	Delete(context context.Context, id string) error

	// ListByManga orders by upvotes, then newest first.
	ListByManga(context context.Context, mangaID int64, limit, offset int) ([]*Review, int, error)

	/*
		ApplyVote locks the review and the user's vote, resolves the transition
		and writes the vote row and both counters in one transaction.

		Returns:
		  - *Review: The review with updated counters
		  - VoteState: The user's state after the toggle
		  - error: [ErrNotFound] or database failures
	*/
	ApplyVote(context context.Context, userID, reviewID string, up bool) (*Review, VoteState, error)

	// Totals aggregates every review of a manga.
	Totals(context context.Context, mangaID int64) (Totals, error)
}
