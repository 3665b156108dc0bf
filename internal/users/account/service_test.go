// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/platform/ctxutil"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
	"github.com/taibuivan/mangashelf/internal/users/account"
	"github.com/taibuivan/mangashelf/pkg/pointer"
)

const reader = "11111111-1111-1111-1111-111111111111"

// memoryRepository is an in-memory [account.Repository].
type memoryRepository struct {
	profiles   map[string]*account.Profile
	categories map[int64]string
	preferred  map[string][]int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		profiles: map[string]*account.Profile{
			reader: {ID: reader, Username: "leitor", Role: "member", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
		categories: map[int64]string{1: "Ação", 2: "Drama", 3: "Seinen"},
		preferred:  map[string][]int64{},
	}
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*account.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memoryRepository) Update(_ context.Context, id string, changes account.Changes) (*account.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	p.DisplayName = pointer.Fallback(changes.DisplayName, p.DisplayName)
	if changes.AvatarURL != nil {
		p.AvatarURL = changes.AvatarURL
	}
	copied := *p
	return &copied, nil
}

func (m *memoryRepository) PreferredCategories(_ context.Context, userID string) ([]catalog.Category, error) {
	categories := make([]catalog.Category, 0)
	for _, id := range m.preferred[userID] {
		categories = append(categories, catalog.Category{ID: id, Name: m.categories[id]})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *memoryRepository) ReplacePreferredCategories(_ context.Context, userID string, categoryIDs []int64) error {
	for _, id := range categoryIDs {
		if _, ok := m.categories[id]; !ok {
			return account.ErrCategoryNotFound
		}
	}
	m.preferred[userID] = categoryIDs
	return nil
}

func newService() (*account.Service, *memoryRepository) {
	repo := newMemoryRepository()
	return account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func newRouter(service *account.Service) chi.Router {
	router := chi.NewRouter()
	account.NewHandler(service).Register(router)
	return router
}

func as(userID string, request *http.Request) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID, Role: sec.RoleMember}))
}

/*
TestSetPreferredCategories covers replacement, deduplication and unknown IDs.
*/
func TestSetPreferredCategories(t *testing.T) {
	ctx := context.Background()
	service, repo := newService()

	profile, err := service.SetPreferredCategories(ctx, reader, []int64{3, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, repo.preferred[reader])
	assert.Equal(t, []catalog.Category{{ID: 1, Name: "Ação"}, {ID: 3, Name: "Seinen"}}, profile.PreferredCategories)

	_, err = service.SetPreferredCategories(ctx, reader, []int64{2, 99})
	assert.ErrorIs(t, err, account.ErrCategoryNotFound)
	assert.Equal(t, []int64{3, 1}, repo.preferred[reader])

	cleared, err := service.SetPreferredCategories(ctx, reader, []int64{})
	require.NoError(t, err)
	assert.Empty(t, cleared.PreferredCategories)

	_, err = service.SetPreferredCategories(ctx, "ghost", []int64{1})
	assert.ErrorIs(t, err, account.ErrUserNotFound)
}

/*
TestGetPublicProfile verifies the role is not exposed.
*/
func TestGetPublicProfile(t *testing.T) {
	service, _ := newService()
	router := newRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users/"+reader, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"username":"leitor"`)
	assert.NotContains(t, recorder.Body.String(), `"role"`)
}

/*
TestUpdateProfile_TrimsDisplayName verifies surrounding spaces are dropped and nil fields stay untouched.
*/
func TestUpdateProfile_TrimsDisplayName(t *testing.T) {
	service, repo := newService()
	repo.profiles[reader].AvatarURL = pointer.To("https://cdn.example/a.png")

	profile, err := service.UpdateProfile(context.Background(), reader, account.Changes{DisplayName: pointer.To("  Leitora  ")})
	require.NoError(t, err)

	assert.Equal(t, "Leitora", profile.DisplayName)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, "https://cdn.example/a.png", *profile.AvatarURL)
}

/*
TestHTTP_Me covers auth, profile edits and category validation.
*/
func TestHTTP_Me(t *testing.T) {
	service, _ := newService()
	router := newRouter(service)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(reader, httptest.NewRequest(http.MethodPatch, "/me", strings.NewReader(`{"displayName":"Leitora"}`))))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"displayName":"Leitora"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(reader, httptest.NewRequest(http.MethodPatch, "/me", strings.NewReader(`{"displayName":"  ","avatarUrl":"nope"}`))))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"displayName"`)
	assert.Contains(t, recorder.Body.String(), `"field":"avatarUrl"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(reader, httptest.NewRequest(http.MethodPut, "/me/categories", strings.NewReader(`{}`))))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(reader, httptest.NewRequest(http.MethodPut, "/me/categories", strings.NewReader(`{"categoryIds":[0]}`))))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"categoryIds.0"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(reader, httptest.NewRequest(http.MethodPut, "/me/categories", strings.NewReader(`{"categoryIds":[2]}`))))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Drama"`)
}
