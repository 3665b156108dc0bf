// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/pkg/locale"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "pt-BR"},
		{"  ", "pt-BR"},
		{"pt-br", "pt-BR"},
		{"PT-BR", "pt-BR"},
		{"en", "en"},
		{"ja", "ja"},
		{"not a tag!", "not a tag!"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, locale.Normalize(tt.in, "pt-BR"), tt.in)
	}
}

func TestBase(t *testing.T) {
	assert.Equal(t, "pt", locale.Base("pt-BR"))
	assert.Equal(t, "en", locale.Base("en"))
}
