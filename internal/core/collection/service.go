// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/pkg/pagination"
	"github.com/taibuivan/mangashelf/pkg/slice"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// ToggleAction tags the outcome of a membership toggle.
type ToggleAction string

const (
	ActionAdded   ToggleAction = "added"
	ActionRemoved ToggleAction = "removed"
)

// ToggleResult is the collection after a toggle plus what happened.
type ToggleResult struct {
	Collection *Detail      `json:"collection"`
	Action     ToggleAction `json:"action"`
}

// ListPage is one page of the caller's collections.
type ListPage struct {
	Data       []*Listed       `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// PublicPage is one page of PUBLIC collections.
type PublicPage struct {
	Data       []*Collection   `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateInput is a validated create request.
type CreateInput struct {
	Name        string
	Cover       *string
	Description *string
	Status      Status
	MangaIDs    []int64
}

// # Service Layer

// Service implements collection and collaboration rules.
type Service struct {
	repo   Repository
	mangas manga.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new collection [Service].
func NewService(repo Repository, mangas manga.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, mangas: mangas, logger: logger, now: time.Now}
}

// # Collection CRUD

/*
Create stores a collection owned by ownerID.

Status defaults to PRIVATE. Initial mangas are deduplicated and attributed to
the owner.
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Collection, error) {
	status := input.Status
	if status == "" {
		status = StatusPrivate
	}

	now := service.now().UTC()
	collection := &Collection{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Cover:       input.Cover,
		Description: input.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mangaIDs := slice.Unique(input.MangaIDs)
	if err := service.repo.Create(context, collection, mangaIDs); err != nil {
		return nil, err
	}
	collection.MangaCount = len(mangaIDs)

	service.logger.Info("collection_created",
		slog.String("collection_id", collection.ID),
		slog.String("owner_id", ownerID),
		slog.Int("initial_mangas", len(mangaIDs)),
	)
	return collection, nil
}

// List returns the collections the caller owns or collaborates on.
func (service *Service) List(context context.Context, userID string, params pagination.Params) (*ListPage, error) {
	listed, total, err := service.repo.ListForUser(context, userID, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return &ListPage{Data: listed, Pagination: pagination.NewMeta(params, total)}, nil
}

// ListPublic returns PUBLIC collections, newest first.
func (service *Service) ListPublic(context context.Context, params pagination.Params) (*PublicPage, error) {
	collections, total, err := service.repo.ListPublic(context, params.Take, params.Skip)
	if err != nil {
		return nil, err
	}
	return &PublicPage{Data: collections, Pagination: pagination.NewMeta(params, total)}, nil
}

// Get returns a viewable collection with one localized name per manga.
func (service *Service) Get(context context.Context, collectionID, userID, language string) (*Detail, error) {
	collection, permission, err := service.CheckUserCanView(context, collectionID, userID)
	if err != nil {
		return nil, err
	}
	return service.detail(context, collection, *permission.Role, language)
}

func (service *Service) detail(context context.Context, collection *Collection, role Role, language string) (*Detail, error) {
	memberships, err := service.repo.ListMangas(context, collection.ID)
	if err != nil {
		return nil, err
	}

	items := slice.Map(memberships, func(membership Membership) MangaItem {
		return MangaItem{
			ID:      membership.Manga.ID,
			UUID:    membership.Manga.UUID,
			Name:    manga.Localize(membership.Manga.Translations, language).Title,
			Cover:   membership.Manga.Cover,
			AddedBy: membership.AddedBy,
			AddedAt: membership.AddedAt,
		}
	})

	collection.MangaCount = len(items)
	return &Detail{Collection: *collection, Role: role, Mangas: items}, nil
}

// Update applies changes for any caller with edit rights.
func (service *Service) Update(context context.Context, collectionID, userID string, changes Changes) (*Collection, error) {
	if _, err := service.CheckUserCanEdit(context, collectionID, userID); err != nil {
		return nil, err
	}

	collection, err := service.repo.Update(context, collectionID, changes)
	if err != nil {
		return nil, err
	}

	service.logger.Info("collection_updated", slog.String("collection_id", collectionID), slog.String("user_id", userID))
	return collection, nil
}

// Delete removes a collection. Only the owner may delete.
func (service *Service) Delete(context context.Context, collectionID, userID string) error {
	collection, err := service.repo.FindByID(context, collectionID)
	if err != nil {
		return err
	}
	if collection.OwnerID != userID {
		return ErrNoDeletePermission
	}

	if err := service.repo.Delete(context, collectionID); err != nil {
		return err
	}

	service.logger.Info("collection_deleted", slog.String("collection_id", collectionID), slog.String("owner_id", userID))
	return nil
}

// # Memberships

// CheckManga lists the caller's collections flagged by whether they contain mangaID.
func (service *Service) CheckManga(context context.Context, userID string, mangaID int64) ([]Inclusion, error) {
	return service.repo.Inclusions(context, userID, mangaID)
}

/*
ToggleManga adds the manga when absent and removes it when present.

Returns:
  - *ToggleResult: The refreshed collection and "added" or "removed"
  - error: Edit-permission or missing-manga errors
*/
func (service *Service) ToggleManga(context context.Context, collectionID, userID string, mangaID int64, language string) (*ToggleResult, error) {
	permission, err := service.CheckUserCanEdit(context, collectionID, userID)
	if err != nil {
		return nil, err
	}

	exists, err := service.mangas.Exists(context, mangaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, manga.ErrNotFound
	}

	included, err := service.repo.HasManga(context, collectionID, mangaID)
	if err != nil {
		return nil, err
	}

	action := ActionAdded
	if included {
		action = ActionRemoved
		err = service.repo.RemoveManga(context, collectionID, mangaID)
	} else {
		err = service.repo.AddManga(context, collectionID, mangaID, userID)
	}
	if err != nil {
		return nil, err
	}

	collection, err := service.repo.FindByID(context, collectionID)
	if err != nil {
		return nil, err
	}

	detail, err := service.detail(context, collection, *permission.Role, language)
	if err != nil {
		return nil, err
	}

	service.logger.Info("collection_manga_toggled",
		slog.String("collection_id", collectionID),
		slog.Int64("manga_id", mangaID),
		slog.String("action", string(action)),
	)
	return &ToggleResult{Collection: detail, Action: action}, nil
}

// # Collaborators

// requireManager loads the collection and checks the caller is OWNER or ADMIN.
func (service *Service) requireManager(context context.Context, collectionID, userID string) (*Collection, error) {
	collection, err := service.repo.FindByID(context, collectionID)
	if err != nil {
		return nil, err
	}

	permission, err := service.permissionFor(context, collection, userID)
	if err != nil {
		return nil, err
	}
	if !permission.canManage() {
		return nil, ErrNoManagePermission
	}

	return collection, nil
}

/*
AddCollaborator grants targetID a role on the collection.

Steps:
 1. Collection must exist and the caller must be OWNER or ADMIN
 2. Target user must exist
 3. Target must not already be a collaborator
 4. Target must not be the owner
*/
func (service *Service) AddCollaborator(context context.Context, collectionID, callerID, targetID string, role Role) (*Collaborator, error) {
	if role == "" {
		role = RoleEditor
	}
	if !role.IsCollaboratorRole() {
		return nil, ErrInvalidRole
	}

	collection, err := service.requireManager(context, collectionID, callerID)
	if err != nil {
		return nil, err
	}

	exists, err := service.repo.UserExists(context, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	_, err = service.repo.FindCollaborator(context, collectionID, targetID)
	switch {
	case err == nil:
		return nil, ErrAlreadyCollaborator
	case !errors.Is(err, ErrCollaboratorNotFound):
		return nil, err
	}

	if collection.OwnerID == targetID {
		return nil, ErrOwnerCannotCollaborate
	}

	collaborator := &Collaborator{
		ID:           uuid.New(),
		CollectionID: collectionID,
		UserID:       targetID,
		Role:         role,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.repo.AddCollaborator(context, collaborator); err != nil {
		return nil, err
	}

	service.logger.Info("collaborator_added",
		slog.String("collection_id", collectionID),
		slog.String("user_id", targetID),
		slog.String("role", string(role)),
	)
	return collaborator, nil
}

// UpdateCollaboratorRole changes a collaborator's role. OWNER or ADMIN only.
func (service *Service) UpdateCollaboratorRole(context context.Context, collectionID, callerID, targetID string, role Role) (*Collaborator, error) {
	if !role.IsCollaboratorRole() {
		return nil, ErrInvalidRole
	}

	if _, err := service.requireManager(context, collectionID, callerID); err != nil {
		return nil, err
	}
	if !uuid.Valid(targetID) {
		return nil, ErrCollaboratorNotFound
	}

	collaborator, err := service.repo.UpdateCollaboratorRole(context, collectionID, targetID, role)
	if err != nil {
		return nil, err
	}

	service.logger.Info("collaborator_role_updated",
		slog.String("collection_id", collectionID),
		slog.String("user_id", targetID),
		slog.String("role", string(role)),
	)
	return collaborator, nil
}

/*
RemoveCollaborator revokes targetID's access.

OWNER and ADMIN may remove anyone; a collaborator may always remove
themselves. The mangas the collaborator added leave with them.
*/
func (service *Service) RemoveCollaborator(context context.Context, collectionID, callerID, targetID string) error {
	if callerID == targetID {
		if _, err := service.repo.FindByID(context, collectionID); err != nil {
			return err
		}
	} else if _, err := service.requireManager(context, collectionID, callerID); err != nil {
		return err
	}
	if !uuid.Valid(targetID) {
		return ErrCollaboratorNotFound
	}

	removed, err := service.repo.RemoveCollaborator(context, collectionID, targetID)
	if err != nil {
		return err
	}

	service.logger.Info("collaborator_removed",
		slog.String("collection_id", collectionID),
		slog.String("user_id", targetID),
		slog.Int("mangas_removed", removed),
	)
	return nil
}

// ListCollaborators returns the collaborators of a collection the caller can view.
func (service *Service) ListCollaborators(context context.Context, collectionID, userID string) ([]*Collaborator, error) {
	if _, _, err := service.CheckUserCanView(context, collectionID, userID); err != nil {
		return nil, err
	}
	return service.repo.ListCollaborators(context, collectionID)
}
