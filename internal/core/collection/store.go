// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"time"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

// Membership is a manga in a collection with its attribution.
type Membership struct {
	Manga   *manga.Manga
	AddedBy *string
	AddedAt time.Time
}

// Repository defines the data access contract for collections.
type Repository interface {

	// # Collections

	// FindByID returns the collection or [ErrNotFound].
	FindByID(context context.Context, id string) (*Collection, error)

	/*
		Create inserts the collection and its initial mangas in one transaction.
		Initial mangas are attributed to the owner.
	*/
	Create(context context.Context, collection *Collection, mangaIDs []int64) error

	// Update applies changes and returns the stored row.
	Update(context context.Context, id string, changes Changes) (*Collection, error)

	// Delete removes the collection with its memberships and collaborators.
	Delete(context context.Context, id string) error

	// ListForUser returns collections the user owns or collaborates on, newest first.
	ListForUser(context context.Context, userID string, limit, offset int) ([]*Listed, int, error)

	// ListPublic returns PUBLIC collections, newest first.
	ListPublic(context context.Context, limit, offset int) ([]*Collection, int, error)

	// # Memberships

	// ListMangas returns the collection's mangas, most recently added first.
	ListMangas(context context.Context, collectionID string) ([]Membership, error)

	// Inclusions lists the user's collections flagged by whether they contain mangaID.
	Inclusions(context context.Context, userID string, mangaID int64) ([]Inclusion, error)

	HasManga(context context.Context, collectionID string, mangaID int64) (bool, error)
	AddManga(context context.Context, collectionID string, mangaID int64, addedBy string) error
	RemoveManga(context context.Context, collectionID string, mangaID int64) error

	// # Collaborators

	UserExists(context context.Context, userID string) (bool, error)

	// FindCollaborator returns the row or [ErrCollaboratorNotFound].
	FindCollaborator(context context.Context, collectionID, userID string) (*Collaborator, error)

	// AddCollaborator inserts the row; a duplicate is [ErrAlreadyCollaborator].
	AddCollaborator(context context.Context, collaborator *Collaborator) error

	UpdateCollaboratorRole(context context.Context, collectionID, userID string, role Role) (*Collaborator, error)

	/*
		RemoveCollaborator deletes, in one transaction and in this order, every
		membership the collaborator added and then the collaborator row.

		Returns:
		  - int: Number of memberships removed
		  - error: [ErrCollaboratorNotFound] or database failures
	*/
	RemoveCollaborator(context context.Context, collectionID, userID string) (int, error)

	ListCollaborators(context context.Context, collectionID string) ([]*Collaborator, error)
}
