// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import "context"

// Repository defines the data access contract for playlists.
type Repository interface {
	Create(context context.Context, playlist *Playlist) error

	// FindByID returns the playlist with its items or [ErrNotFound].
	FindByID(context context.Context, id string) (*Playlist, error)

	ListByUser(context context.Context, userID string, limit, offset int) ([]*Playlist, int, error)
	Update(context context.Context, id string, changes Changes) (*Playlist, error)
	Delete(context context.Context, id string) error
}
