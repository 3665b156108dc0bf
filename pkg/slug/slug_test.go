// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Capa do Mangá":        "capa-do-manga",
		"  One  Piece!! ":      "one-piece",
		"Ação--Aventura":       "acao-aventura",
		"wallpaper_01.PNG":     "wallpaper-01-png",
		"???":                  "",
	}

	for in, want := range tests {
		assert.Equal(t, want, slug.From(in), in)
	}

	assert.Equal(t, "image", slug.FromOr("???", "image"))
}
