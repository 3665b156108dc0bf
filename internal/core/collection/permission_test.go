// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/core/collection"
	"github.com/taibuivan/mangashelf/pkg/pointer"
)

/*
TestCheckUserPermission_Roles verifies the resolved role for every kind of caller.
*/
func TestCheckUserPermission_Roles(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.seed(ctx)

	tests := []struct {
		name    string
		userID  string
		allowed bool
		isOwner bool
		role    *collection.Role
	}{
		{"owner", owner, true, true, pointer.To(collection.RoleOwner)},
		{"admin", admin, true, false, pointer.To(collection.RoleAdmin)},
		{"editor", editor, true, false, pointer.To(collection.RoleEditor)},
		{"stranger", stranger, false, false, nil},
		{"anonymous", "", false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission, err := f.service.CheckUserPermission(ctx, c.ID, tt.userID)
			require.NoError(t, err)

			assert.Equal(t, tt.allowed, permission.HasPermission)
			assert.Equal(t, tt.isOwner, permission.IsOwner)
			assert.Equal(t, tt.role, permission.Role)
		})
	}
}

/*
TestCheckUserPermission_OwnerPrecedence verifies the owner check wins over a
stale collaborator row for the same user.
*/
func TestCheckUserPermission_OwnerPrecedence(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.seed(ctx)

	f.repo.collaborators[c.ID][owner] = &collection.Collaborator{UserID: owner, Role: collection.RoleEditor}

	permission, err := f.service.CheckUserPermission(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.True(t, permission.IsOwner)
	assert.Equal(t, collection.RoleOwner, *permission.Role)
}

/*
TestCheckUserPermission_MissingCollection verifies absence is a denial, not an error.
*/
func TestCheckUserPermission_MissingCollection(t *testing.T) {
	permission, err := newFixture().service.CheckUserPermission(context.Background(), "missing", owner)

	require.NoError(t, err)
	assert.Equal(t, collection.Permission{}, permission)
}

/*
TestCheckUserCanEdit verifies editors pass and strangers are refused.
*/
func TestCheckUserCanEdit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.seed(ctx)

	for _, userID := range []string{owner, admin, editor} {
		_, err := f.service.CheckUserCanEdit(ctx, c.ID, userID)
		assert.NoError(t, err, userID)
	}

	_, err := f.service.CheckUserCanEdit(ctx, c.ID, stranger)
	assert.ErrorIs(t, err, collection.ErrNoEditPermission)
}

/*
TestCheckUserCanView_PublicBypass verifies a stranger is refused on PRIVATE and
admitted as VIEWER once the collection is PUBLIC, without gaining ownership.
*/
func TestCheckUserCanView_PublicBypass(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.seed(ctx)

	_, _, err := f.service.CheckUserCanView(ctx, c.ID, stranger)
	require.ErrorIs(t, err, collection.ErrNoViewPermission)

	f.repo.collections[c.ID].Status = collection.StatusPublic

	_, permission, err := f.service.CheckUserCanView(ctx, c.ID, stranger)
	require.NoError(t, err)
	assert.True(t, permission.HasPermission)
	assert.False(t, permission.IsOwner)
	assert.Equal(t, collection.RoleViewer, *permission.Role)

	_, err = f.service.CheckUserCanEdit(ctx, c.ID, stranger)
	assert.ErrorIs(t, err, collection.ErrNoEditPermission)
	assert.Len(t, f.repo.collaborators[c.ID], 2)
}

/*
TestCheckUserCanView_NotFoundFirst verifies a missing collection is reported as
not found rather than forbidden.
*/
func TestCheckUserCanView_NotFoundFirst(t *testing.T) {
	_, _, err := newFixture().service.CheckUserCanView(context.Background(), "missing", stranger)
	assert.ErrorIs(t, err, collection.ErrNotFound)
}
