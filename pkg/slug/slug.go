// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII slugs from arbitrary Unicode strings.
//
// Slugs name uploaded objects in storage ("capa-do-mangá.png" -> "capa-do-manga"),
// so object keys stay URL-safe regardless of what the client called the file.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// From converts s into a lowercase, hyphen-separated ASCII slug. The result
// may be empty when s has no letters or digits.
func From(s string) string {
	// decompose accented characters, then drop the combining marks
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// FromOr is [From] with a fallback for inputs that slug to nothing.
func FromOr(s, fallback string) string {
	if result := From(s); result != "" {
		return result
	}
	return fallback
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
