// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discover_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/internal/core/discover"
	"github.com/taibuivan/mangashelf/internal/platform/ctxutil"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
)

/*
TestHTTP_PersonalFeedsRequireAuth verifies anonymous callers are rejected.
*/
func TestHTTP_PersonalFeedsRequireAuth(t *testing.T) {
	router := discover.NewHandler(newService(&fakeRepository{}, nil), "pt-BR").Routes()

	for _, path := range []string{"/feed", "/ia"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
		assert.Contains(t, recorder.Body.String(), "Não autenticado.")
	}
}

/*
TestHTTP_PublicFeeds verifies the ranked feeds answer anonymously.
*/
func TestHTTP_PublicFeeds(t *testing.T) {
	router := discover.NewHandler(newService(&fakeRepository{}, nil), "pt-BR").Routes()

	for _, path := range []string{"/recent", "/most-viewed?lg=en", "/most-liked?page=2&limit=5"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, recorder.Code, path)
		assert.Contains(t, recorder.Body.String(), `"totalPages"`)
	}
}

/*
TestHTTP_RecordView verifies an authenticated view returns 204.
*/
func TestHTTP_RecordView(t *testing.T) {
	repo := &fakeRepository{}
	router := discover.NewHandler(newService(repo, fakeMangas{4: true}), "pt-BR").Routes()

	request := httptest.NewRequest(http.MethodPost, "/history/4", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u1", Role: sec.RoleMember}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, []int64{4}, repo.views)
}
