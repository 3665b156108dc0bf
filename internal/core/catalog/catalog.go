// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements manga search and the static catalogue lookups
(categories, publication types, languages).

Search results project the requested language only (see manga.ProjectExact);
mangas without that translation are listed as "Sem título".
*/
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/mangashelf/internal/core/manga"
)

// Category is a genre label attached to mangas.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Language is a translation language offered by the catalogue.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Filter holds the optional search criteria. Empty fields do not filter.
type Filter struct {
	// Tokens are lowercased words of the name query; each must match some
	// translation's name or description.
	Tokens   []string
	Category string
	Status   manga.Status
	Type     string
}

var lower = cases.Lower(language.Und)

// Tokenize splits a free-text query on whitespace and lowercases each word.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, lower.String(field))
	}
	return tokens
}
