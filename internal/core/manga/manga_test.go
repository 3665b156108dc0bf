// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

var translations = []manga.Translation{
	{Language: "ja", Name: "ワンピース", Description: "海賊"},
	{Language: "en", Name: "One Piece", Description: "Pirates"},
	{Language: "pt-BR", Name: "One Piece BR", Description: "Piratas"},
}

/*
TestLocalize covers the exact -> en -> first fallback chain.
*/
func TestLocalize(t *testing.T) {
	tests := []struct {
		name         string
		translations []manga.Translation
		language     string
		want         manga.Localized
	}{
		{"exact", translations, "pt-BR", manga.Localized{Title: "One Piece BR", Description: "Piratas"}},
		{"exact_case_insensitive", translations, "PT-br", manga.Localized{Title: "One Piece BR", Description: "Piratas"}},
		{"english_fallback", translations, "es", manga.Localized{Title: "One Piece", Description: "Pirates"}},
		{"first_fallback", translations[:1], "es", manga.Localized{Title: "ワンピース", Description: "海賊"}},
		{"none", nil, "pt-BR", manga.Localized{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, manga.Localize(tt.translations, tt.language))
		})
	}
}

/*
TestLocalize_EnglishOnlyRequestedPortuguese covers a manga with only an "en"
translation listed in Portuguese: the English text is used, not blanks.
*/
func TestLocalize_EnglishOnlyRequestedPortuguese(t *testing.T) {
	only := []manga.Translation{{Language: "en", Name: "Berserk", Description: "Dark fantasy"}}

	got := manga.Localize(only, "pt")
	assert.Equal(t, "Berserk", got.Title)
	assert.Equal(t, "Dark fantasy", got.Description)
}

/*
TestProjectExact verifies the search rule never falls back to other languages.
*/
func TestProjectExact(t *testing.T) {
	assert.Equal(t, manga.Localized{Title: "One Piece", Description: "Pirates"}, manga.ProjectExact(translations, "en"))
	assert.Equal(t, manga.Localized{Title: "Sem título", Description: ""}, manga.ProjectExact(translations, "es"))
	assert.Equal(t, manga.Localized{Title: "Sem título"}, manga.ProjectExact(nil, "pt-BR"))
}

/*
TestSummarizeAll verifies the projection and the non-nil empty result.
*/
func TestSummarizeAll(t *testing.T) {
	m := &manga.Manga{ID: 7, UUID: "u-7", Cover: "c.png", ViewCount: 3, Translations: translations}

	summaries := manga.SummarizeAll([]*manga.Manga{m}, "es", manga.Localize)
	assert.Equal(t, "One Piece", summaries[0].Title)
	assert.EqualValues(t, 7, summaries[0].ID)
	assert.EqualValues(t, 3, summaries[0].ViewCount)

	assert.NotNil(t, manga.SummarizeAll(nil, "en", manga.Localize))
}

func TestEnums(t *testing.T) {
	assert.Len(t, manga.Types(), 4)
	assert.True(t, manga.StatusHiatus.IsValid())
	assert.False(t, manga.Status("paused").IsValid())
}
