// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangashelf/internal/core/catalog"
	"github.com/taibuivan/mangashelf/internal/core/manga"
)

func newRouter(repo *fakeRepository) chi.Router {
	router := chi.NewRouter()
	catalog.NewHandler(newService(repo), "pt-BR").Register(router)
	return router
}

/*
TestHTTP_SearchWithLanguageSegment verifies POST /search/{lg} normalizes the tag
and caps the limit at 50.
*/
func TestHTTP_SearchWithLanguageSegment(t *testing.T) {
	repo := &fakeRepository{mangas: []*manga.Manga{
		{ID: 1, Translations: []manga.Translation{{Language: "en", Name: "Monster"}}},
	}}
	router := newRouter(repo)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/search/EN", strings.NewReader(`{"name":"monster","limit":500}`))
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data       []manga.Summary `json:"data"`
		Pagination map[string]any  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Monster", body.Data[0].Title)
	assert.EqualValues(t, 50, body.Pagination["limit"])
	assert.Contains(t, body.Pagination, "to")
	assert.Equal(t, 50, repo.lastLimit)
}

/*
TestHTTP_CategorySearchValidation verifies the body schema is enforced.
*/
func TestHTTP_CategorySearchValidation(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(&fakeRepository{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/search/categories", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"name"`)
}

/*
TestHTTP_Lookups verifies the static lookup routes respond.
*/
func TestHTTP_Lookups(t *testing.T) {
	router := newRouter(&fakeRepository{})

	for _, path := range []string{"/categories", "/types", "/languages", "/search?name=x", "/search/advanced/pt-br?type=manhwa"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}
