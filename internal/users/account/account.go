// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the caller's profile and reading preferences.

Accounts are provisioned by the identity service that issues tokens; this
package only reads them and edits the mutable subset. Preferred categories
seed the personal discovery feeds.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/platform/apperr"
)

// # Domain Entities

// Profile is the private view of an account.
type Profile struct {
	ID                  string             `json:"id"`
	Username            string             `json:"username"`
	DisplayName         string             `json:"displayName"`
	AvatarURL           *string            `json:"avatarUrl"`
	Role                string             `json:"role"`
	CreatedAt           time.Time          `json:"createdAt"`
	PreferredCategories []catalog.Category `json:"preferredCategories"`
}

// PublicProfile is what other users may see.
type PublicProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public strips private fields.
func (p *Profile) Public() *PublicProfile {
	return &PublicProfile{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		CreatedAt:   p.CreatedAt,
	}
}

// Changes carries the editable profile fields.
type Changes struct {
	DisplayName *string
	AvatarURL   *string
}

// MaxPreferredCategories bounds the preference list.
const MaxPreferredCategories = 30

var (
	ErrUserNotFound = apperr.NotFound("Usuário não encontrado")

	ErrCategoryNotFound = apperr.NotFound("Categoria não encontrada")
)

// # Repository Contracts

// Repository defines the persistence contract for accounts.
type Repository interface {
	/*
		FindByID retrieves an account without its preferences.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Profile: Loaded account
		  - error: ErrUserNotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	// Update applies changes and returns the stored row.
	Update(context context.Context, id string, changes Changes) (*Profile, error)

	// PreferredCategories lists the user's categories ordered by name.
	PreferredCategories(context context.Context, userID string) ([]catalog.Category, error)

	/*
		ReplacePreferredCategories swaps the full preference set atomically.

		Returns:
		  - error: ErrCategoryNotFound when an ID does not exist
	*/
	ReplacePreferredCategories(context context.Context, userID string, categoryIDs []int64) error
}
