// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"errors"
)

// Permission is the outcome of a permission check. Role is nil when denied.
type Permission struct {
	HasPermission bool  `json:"hasPermission"`
	IsOwner       bool  `json:"isOwner"`
	Role          *Role `json:"role"`
}

func granted(role Role) Permission {
	return Permission{HasPermission: true, IsOwner: role == RoleOwner, Role: &role}
}

/*
CheckUserPermission resolves the user's role on a collection.

Description: The owner check runs before the collaborator lookup. A missing
collection or a user with no row yields a denied Permission, never a domain
error; only storage failures are returned.
*/
func (service *Service) CheckUserPermission(context context.Context, collectionID, userID string) (Permission, error) {
	collection, err := service.repo.FindByID(context, collectionID)
	if errors.Is(err, ErrNotFound) {
		return Permission{}, nil
	}
	if err != nil {
		return Permission{}, err
	}

	return service.permissionFor(context, collection, userID)
}

func (service *Service) permissionFor(context context.Context, collection *Collection, userID string) (Permission, error) {
	if userID == "" {
		return Permission{}, nil
	}
	if collection.OwnerID == userID {
		return granted(RoleOwner), nil
	}

	collaborator, err := service.repo.FindCollaborator(context, collection.ID, userID)
	if errors.Is(err, ErrCollaboratorNotFound) {
		return Permission{}, nil
	}
	if err != nil {
		return Permission{}, err
	}

	return granted(collaborator.Role), nil
}

// CheckUserCanEdit passes for OWNER, ADMIN and EDITOR; otherwise [ErrNoEditPermission].
func (service *Service) CheckUserCanEdit(context context.Context, collectionID, userID string) (Permission, error) {
	permission, err := service.CheckUserPermission(context, collectionID, userID)
	if err != nil {
		return Permission{}, err
	}
	if !permission.HasPermission {
		return Permission{}, ErrNoEditPermission
	}
	return permission, nil
}

/*
CheckUserCanView decides read access.

Steps:
 1. Missing collection -> [ErrNotFound]
 2. PUBLIC -> VIEWER for anyone, without consulting ownership
 3. PRIVATE -> [Service.CheckUserPermission], denied -> [ErrNoViewPermission]
*/
func (service *Service) CheckUserCanView(context context.Context, collectionID, userID string) (*Collection, Permission, error) {
	collection, err := service.repo.FindByID(context, collectionID)
	if err != nil {
		return nil, Permission{}, err
	}

	if collection.Status == StatusPublic {
		role := RoleViewer
		return collection, Permission{HasPermission: true, Role: &role}, nil
	}

	permission, err := service.permissionFor(context, collection, userID)
	if err != nil {
		return nil, Permission{}, err
	}
	if !permission.HasPermission {
		return nil, Permission{}, ErrNoViewPermission
	}

	return collection, permission, nil
}

// canManage reports whether the permission may change collaborators.
func (p Permission) canManage() bool {
	return p.HasPermission && p.Role != nil && (*p.Role == RoleOwner || *p.Role == RoleAdmin)
}
