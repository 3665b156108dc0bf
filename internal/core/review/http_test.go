// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/core/review"
	"github.com/taibuivan/mangashelf/internal/platform/ctxutil"
	"github.com/taibuivan/mangashelf/internal/platform/sec"
)

func newRouter(repo *memoryRepository) chi.Router {
	router := chi.NewRouter()
	review.NewHandler(newService(repo)).Register(router)
	return router
}

func as(userID string, request *http.Request) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID, Role: sec.RoleMember}))
}

const validBody = `{"mangaId":1,"title":"Bom","rating":8,"art":8,"story":8,"characters":8,"worldbuilding":8,"pacing":8,"emotion":8,"originality":8,"dialogues":8}`

/*
TestHTTP_CreateConflictAndRange verifies 201, 409 and 400 on the create route.
*/
func TestHTTP_CreateConflictAndRange(t *testing.T) {
	router := newRouter(newMemoryRepository())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, as("u1", httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(validBody))))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as("u1", httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(validBody))))
	assert.Equal(t, http.StatusConflict, recorder.Code)

	bad := strings.Replace(validBody, `"art":8`, `"art":42`, 1)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as("u2", httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(bad))))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), review.RatingRangeMessage)
}

/*
TestHTTP_StatsWithoutReviews verifies the zero overview renders.
*/
func TestHTTP_StatsWithoutReviews(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(newMemoryRepository()).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/manga/2/stats", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"totalReviews":0`)
	assert.Contains(t, recorder.Body.String(), `"originality":0`)
}

/*
TestHTTP_MyReviewRequiresAuth verifies the personal lookup is guarded.
*/
func TestHTTP_MyReviewRequiresAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(newMemoryRepository()).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/manga/1/my-review", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
