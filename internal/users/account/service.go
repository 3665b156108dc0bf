// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/mangashelf/pkg/pointer"
	"github.com/taibuivan/mangashelf/pkg/slice"
)

// # Service Layer

// Service orchestrates profile reads and preference updates.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Profile Management

/*
GetProfile retrieves the caller's profile with preferred categories.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The hydrated profile
  - error: ErrUserNotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	profile, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	categories, err := service.repo.PreferredCategories(context, userID)
	if err != nil {
		return nil, err
	}
	profile.PreferredCategories = categories

	return profile, nil
}

// GetPublicProfile retrieves another user's public view.
func (service *Service) GetPublicProfile(context context.Context, userID string) (*PublicProfile, error) {
	profile, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

// UpdateProfile applies partial changes to the caller's profile.
func (service *Service) UpdateProfile(context context.Context, userID string, changes Changes) (*Profile, error) {
	if changes.DisplayName != nil {
		changes.DisplayName = pointer.To(strings.TrimSpace(*changes.DisplayName))
	}

	if _, err := service.repo.Update(context, userID, changes); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))
	return service.GetProfile(context, userID)
}

/*
SetPreferredCategories replaces the caller's preferred categories.

Duplicates are dropped. An empty list clears the preferences, which empties
the personal feed.
*/
func (service *Service) SetPreferredCategories(context context.Context, userID string, categoryIDs []int64) (*Profile, error) {
	if _, err := service.repo.FindByID(context, userID); err != nil {
		return nil, err
	}

	unique := slice.Unique(categoryIDs)
	if err := service.repo.ReplacePreferredCategories(context, userID, unique); err != nil {
		return nil, err
	}

	service.logger.Info("preferred_categories_updated", slog.String("user_id", userID), slog.Int("count", len(unique)))
	return service.GetProfile(context, userID)
}
