// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package discover builds the browse feeds: recent releases, most viewed, most
liked, the caller's category feed, and the "ia" recommendation list.

The recommendation list is a heuristic over categories, not a model: it takes
the union of the caller's preferred categories and the categories of every
manga they viewed or liked, drops mangas they already viewed, and sorts by
likes then views.
*/
package discover

import (
	"github.com/taibuivan/mangashelf/internal/core/manga"
	"github.com/taibuivan/mangashelf/pkg/pagination"
)

// Order selects the sort key of a ranked feed.
type Order int

const (
	// OrderRecent sorts by release date, newest first.
	OrderRecent Order = iota
	// OrderMostViewed sorts by view count.
	OrderMostViewed
	// OrderMostLiked sorts by like count.
	OrderMostLiked
)

// Page is one page of a feed.
type Page struct {
	Data       []manga.Summary `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// emptyPage is returned when a personalized feed has nothing to match against.
func emptyPage(params pagination.Params) *Page {
	return &Page{
		Data:       []manga.Summary{},
		Pagination: pagination.NewMeta(params, 0),
	}
}
