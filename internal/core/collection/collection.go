// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collection manages user-curated manga collections and their
collaborators.

Roles are strictly ordered OWNER > ADMIN > EDITOR. The owner is the creator
and never appears as a collaborator row. PUBLIC collections may be viewed by
anyone with the synthetic role VIEWER; PUBLIC never relaxes edit or delete.
*/
package collection

import (
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/validate"
)

// # Enums

// Status is the visibility of a collection.
type Status string

const (
	StatusPrivate Status = "PRIVATE"
	StatusPublic  Status = "PUBLIC"
)

// IsValid reports whether s is a known visibility.
func (s Status) IsValid() bool {
	return s == StatusPrivate || s == StatusPublic
}

// Role is the caller's standing on a collection.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// IsCollaboratorRole reports whether r may be stored on a collaborator row.
func (r Role) IsCollaboratorRole() bool {
	return r == RoleAdmin || r == RoleEditor
}

// # Core Entities

// Collection is a named list of mangas owned by one user.
type Collection struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Cover       *string   `json:"cover"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	MangaCount  int       `json:"mangaCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Collaborator grants a non-owner ADMIN or EDITOR rights on a collection.
type Collaborator struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collectionId"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username,omitempty"`
	DisplayName  string    `json:"displayName,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Listed is a collection in the caller's list, with the caller's own
// collaborator row when they are not the owner.
type Listed struct {
	Collection
	Collaborator *Collaborator `json:"collaborator"`
}

// Inclusion reports whether one of the caller's collections contains a manga.
type Inclusion struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
	IsIncluded bool   `json:"isIncluded"`
}

// MangaItem is one localized manga of a collection.
type MangaItem struct {
	ID      int64     `json:"id"`
	UUID    string    `json:"uuid"`
	Name    string    `json:"name"`
	Cover   string    `json:"cover"`
	AddedBy *string   `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

// Detail is a collection with its localized mangas and the caller's role.
type Detail struct {
	Collection
	Role   Role        `json:"role"`
	Mangas []MangaItem `json:"mangas"`
}

// Changes carries optional collection attributes. Nil leaves a field untouched.
type Changes struct {
	Name        *string
	Cover       *string
	Description *string
	Status      *Status
}

// # Errors

var (
	ErrNotFound               = apperr.NotFound("Coleção não encontrada")
	ErrNoEditPermission       = apperr.Forbidden("Você não tem permissão para modificar esta coleção")
	ErrNoDeletePermission     = apperr.Forbidden("Apenas o dono pode excluir esta coleção")
	ErrNoViewPermission       = apperr.Forbidden("Você não tem permissão para visualizar esta coleção")
	ErrNoManagePermission     = apperr.Forbidden("Apenas o dono ou administradores podem gerenciar colaboradores")
	ErrUserNotFound           = apperr.NotFound("Usuário não encontrado")
	ErrCollaboratorNotFound   = apperr.NotFound("Colaborador não encontrado")
	ErrAlreadyCollaborator    = apperr.Conflict("Usuário já é colaborador")
	ErrOwnerCannotCollaborate = apperr.ValidationError("O dono não pode ser colaborador", apperr.FieldError{
		Field:   "userId",
		Message: "O dono não pode ser colaborador",
	})
	ErrInvalidRole = apperr.ValidationError(validate.Message, apperr.FieldError{
		Field:   "role",
		Message: "Papel inválido. Use EDITOR ou ADMIN",
	})
)
