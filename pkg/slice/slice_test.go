// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangashelf/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.NotNil(t, slice.Map[int, string](nil, strconv.Itoa))
}

func TestUnique(t *testing.T) {
	got := slice.Unique([]int64{3, 1, 3}, []int64{2, 1}, nil)
	assert.Equal(t, []int64{3, 1, 2}, got)
	assert.Empty(t, slice.Unique[int64]())
}
