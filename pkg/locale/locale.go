// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package locale canonicalizes the BCP 47 language codes clients send in
// path segments and query strings.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Fallback is the language consulted when the requested one has no translation.
const Fallback = "en"

// Normalize returns the canonical form of tag ("pt-br" -> "pt-BR"). Empty
// input yields def; input that does not parse is returned trimmed but untouched.
func Normalize(tag, def string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return def
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}

	return parsed.String()
}

// Base returns the primary language subtag ("pt-BR" -> "pt").
func Base(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		if i := strings.IndexAny(tag, "-_"); i > 0 {
			return strings.ToLower(tag[:i])
		}
		return strings.ToLower(tag)
	}

	base, _ := parsed.Base()
	return base.String()
}
