// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

/*
Mutation computes the next state of an entry.

existing is nil when the user has no entry for the manga. Returning nil
aborts without writing.
*/
type Mutation func(existing *Entry) (*Entry, error)

// Repository defines the data access contract for library entries.
type Repository interface {

	/*
		Mutate loads the entry under a row lock, applies mutation, and persists
		the result. The manga like counter follows changes to isLiked.
	*/
	Mutate(context context.Context, userID string, mangaID int64, mutation Mutation) (*Entry, error)

	// Find returns the entry or [ErrEntryNotFound].
	Find(context context.Context, userID string, mangaID int64) (*Entry, error)

	// Delete removes the entry or returns [ErrEntryNotFound].
	Delete(context context.Context, userID string, mangaID int64) error

	// List returns the user's mangas with flag set, most recently updated first.
	List(context context.Context, userID string, flag Flag, limit, offset int) ([]*manga.Manga, int, error)
}
