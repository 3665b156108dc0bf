// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/core/playlist"
	"github.com/taibuivan/mangashelf/internal/platform/ctxutil"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
)

func as(userID string, request *http.Request) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID, Role: sec.RoleMember}))
}

/*
TestHTTP_Lifecycle walks a private playlist through create, hidden get, update and delete.
*/
func TestHTTP_Lifecycle(t *testing.T) {
	service, _ := newService()
	router := playlist.NewHandler(service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, as(owner, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Noite","mangaIds":[2,1]}`))))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data playlist.Playlist `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, []int64{2, 1}, created.Data.MangaIDs)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Playlist não encontrada")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(owner, httptest.NewRequest(http.MethodPut, "/"+created.Data.ID, strings.NewReader(`{"isPublic":true,"mangaIds":[3]}`))))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"mangaIds":[3]`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(stranger, httptest.NewRequest(http.MethodDelete, "/"+created.Data.ID, nil)))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(owner, httptest.NewRequest(http.MethodDelete, "/"+created.Data.ID, nil)))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestHTTP_Validation verifies malformed bodies are rejected before the service runs.
*/
func TestHTTP_Validation(t *testing.T) {
	service, repo := newService()
	router := playlist.NewHandler(service).Routes()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"mangaIds":[1]}`},
		{"bad cover", `{"name":"A","cover":"not a url"}`},
		{"non positive id", `{"name":"A","mangaIds":[0]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, as(owner, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
	assert.Empty(t, repo.playlists)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
