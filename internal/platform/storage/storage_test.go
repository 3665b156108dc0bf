// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/internal/platform/storage"
)

func TestObjectKey(t *testing.T) {
	key := storage.ObjectKey("wallpapers/w-1", "Capa Ação.PNG")

	assert.True(t, strings.HasPrefix(key, "wallpapers/w-1/"))
	assert.True(t, strings.HasSuffix(key, "-capa-acao.png"))

	fallback := storage.ObjectKey("wallpapers/w-1", "###.jpg")
	assert.True(t, strings.HasSuffix(fallback, "-image.jpg"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.app/wallpapers/a.png", storage.PublicURL("https://cdn.app/", "/wallpapers/a.png"))
	assert.Equal(t, "https://cdn.app/a.png", storage.PublicURL("https://cdn.app", "a.png"))
}
