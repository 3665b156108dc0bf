// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manga defines the catalogue entity shared by every other domain.

Search, discovery, library, collections, reviews and playlists all list mangas
with a single localized title, so the entity, its translation-selection rules
and its Postgres projection live here once.

Two selection rules exist and are intentionally distinct:

  - [Localize]: exact language, else "en", else the first translation.
  - [ProjectExact]: exact language only, else "Sem título" and "".
*/
package manga

import (
	"strings"
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/pkg/locale"
)

// # Domain Enums

// Status represents the publication status of a manga.
type Status string

const (
	StatusAnnounced Status = "announced"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusDropped   Status = "dropped"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusAnnounced, StatusOngoing, StatusCompleted, StatusHiatus, StatusDropped:
		return true
	}
	return false
}

// Type is the publication format.
type Type string

const (
	TypeManga   Type = "manga"
	TypeManhwa  Type = "manhwa"
	TypeManhua  Type = "manhua"
	TypeWebtoon Type = "webtoon"
)

// Types returns the fixed list of publication formats.
func Types() []Type {
	return []Type{TypeManga, TypeManhwa, TypeManhua, TypeWebtoon}
}

// # Core Entities

// Translation is one language's name and description of a manga.
type Translation struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Manga is a catalogue record with every translation attached.
type Manga struct {
	ID           int64         `json:"id"`
	UUID         string        `json:"uuid"`
	Cover        string        `json:"cover"`
	Status       Status        `json:"status"`
	Type         Type          `json:"type"`
	ReleasedAt   *time.Time    `json:"releasedAt"`
	ViewCount    int64         `json:"viewCount"`
	LikeCount    int64         `json:"likeCount"`
	CommentCount int64         `json:"commentCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	Translations []Translation `json:"-"`
}

// Summary is the list-item shape: one translation projected into title/description.
type Summary struct {
	ID           int64      `json:"id"`
	UUID         string     `json:"uuid"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Cover        string     `json:"cover"`
	Status       Status     `json:"status"`
	Type         Type       `json:"type"`
	ReleasedAt   *time.Time `json:"releasedAt"`
	ViewCount    int64      `json:"viewCount"`
	LikeCount    int64      `json:"likeCount"`
	CommentCount int64      `json:"commentCount"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// # Translation Selection

// UntitledFallback is the title search results show when the requested language is missing.
const UntitledFallback = "Sem título"

// Localized is the resolved title and description for one language.
type Localized struct {
	Title       string
	Description string
}

// Localize prefers an exact language match, then "en", then the first
// translation. With no translations at all both strings are empty.
func Localize(translations []Translation, language string) Localized {
	if t, ok := find(translations, language); ok {
		return Localized{Title: t.Name, Description: t.Description}
	}
	if t, ok := find(translations, locale.Fallback); ok {
		return Localized{Title: t.Name, Description: t.Description}
	}
	if len(translations) > 0 {
		return Localized{Title: translations[0].Name, Description: translations[0].Description}
	}
	return Localized{}
}

// ProjectExact uses only the exact language; otherwise the title is
// [UntitledFallback] and the description empty.
func ProjectExact(translations []Translation, language string) Localized {
	if t, ok := find(translations, language); ok {
		return Localized{Title: t.Name, Description: t.Description}
	}
	return Localized{Title: UntitledFallback}
}

func find(translations []Translation, language string) (Translation, bool) {
	for _, t := range translations {
		if strings.EqualFold(t.Language, language) {
			return t, true
		}
	}
	return Translation{}, false
}

// Summarize projects m with the given selection rule.
func (m *Manga) Summarize(language string, rule func([]Translation, string) Localized) Summary {
	localized := rule(m.Translations, language)
	return Summary{
		ID:           m.ID,
		UUID:         m.UUID,
		Title:        localized.Title,
		Description:  localized.Description,
		Cover:        m.Cover,
		Status:       m.Status,
		Type:         m.Type,
		ReleasedAt:   m.ReleasedAt,
		ViewCount:    m.ViewCount,
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		CreatedAt:    m.CreatedAt,
	}
}

// SummarizeAll applies [Manga.Summarize] to a list, never returning nil.
func SummarizeAll(mangas []*Manga, language string, rule func([]Translation, string) Localized) []Summary {
	out := make([]Summary, 0, len(mangas))
	for _, m := range mangas {
		out = append(out, m.Summarize(language, rule))
	}
	return out
}

// # Domain Errors

// ErrNotFound is returned when a referenced manga does not exist.
var ErrNotFound = apperr.NotFound("Mangá não encontrado")
