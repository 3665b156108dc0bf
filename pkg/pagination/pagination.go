// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination derives page windows from query strings and builds the
// metadata blocks returned by list endpoints.
//
// # Overview
//
// Clients are loose about parameter names ("page", "Page", "per_page",
// "pageLimit"), so parameters are matched by substring rather than exact key.
// Three metadata shapes exist because different endpoints promised different
// contracts: [Meta] (boolean next/prev), [SearchMeta] (adds "to"), and
// [LibraryMeta] (nullable next/prev page numbers).
package pagination

import (
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Options parameterizes the fallback and ceiling applied to the requested limit.
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

var (
	// Standard applies to most list endpoints.
	Standard = Options{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit}

	// Narrow is used by manga reviews and public collections.
	Narrow = Options{DefaultLimit: 10, MaxLimit: MaxLimit}

	// Search caps catalog search pages at 50 items.
	Search = Options{DefaultLimit: DefaultLimit, MaxLimit: 50}
)

// Params is the resolved page window. Take and Skip map to SQL LIMIT and OFFSET.
type Params struct {
	Page int
	Take int
	Skip int
}

// New clamps page and limit into a valid window. Page is capped so that
// page*take never overflows an int.
func New(page, limit int, opts Options) Params {
	if page < 1 {
		page = DefaultPage
	}

	take := min(max(limit, 1), opts.MaxLimit)
	page = min(page, math.MaxInt/take)

	return Params{
		Page: page,
		Take: take,
		Skip: (page - 1) * take,
	}
}

// FromQuery scans query keys case-insensitively. A key containing "limit" or
// "per_page" sets the limit; otherwise a key containing "page" sets the page.
// Keys are visited in sorted order and the first match for each wins.
//
// It never fails: non-numeric values fall back to the defaults.
func FromQuery(values url.Values, opts Options) Params {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	page, limit := DefaultPage, opts.DefaultLimit
	pageSeen, limitSeen := false, false

	for _, key := range keys {
		lowered := strings.ToLower(key)
		raw := values.Get(key)

		switch {
		case strings.Contains(lowered, "limit") || strings.Contains(lowered, "per_page"):
			if limitSeen {
				continue
			}
			limitSeen = true
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				limit = n
			}

		case strings.Contains(lowered, "page"):
			if pageSeen {
				continue
			}
			pageSeen = true
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
				page = n
			}
		}
	}

	return New(page, limit, opts)
}

// FromRequest is [FromQuery] over the request's URL query.
func FromRequest(request *http.Request, opts Options) Params {
	return FromQuery(request.URL.Query(), opts)
}

// # Metadata

// Meta is the pagination block shared by most list responses.
type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	Next       bool `json:"next"`
	Prev       bool `json:"prev"`
}

// SearchMeta is the catalog search variant; To is page*limit.
type SearchMeta struct {
	Total      int  `json:"total"`
	To         int  `json:"to"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	Next       bool `json:"next"`
	Prev       bool `json:"prev"`
}

// LibraryMeta reports the neighbouring page numbers, or null at the edges.
type LibraryMeta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	Next       *int `json:"next"`
	Prev       *int `json:"prev"`
}

// TotalPages returns ceil(total/take), or 0 when take is not positive.
func TotalPages(total, take int) int {
	if take <= 0 {
		return 0
	}
	return (total + take - 1) / take
}

// NewMeta builds a [Meta] for the window and total count.
func NewMeta(params Params, total int) Meta {
	pages := TotalPages(total, params.Take)
	return Meta{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Take,
		TotalPages: pages,
		Next:       params.Page < pages,
		Prev:       params.Page > 1,
	}
}

// NewSearchMeta builds a [SearchMeta] for the window and total count.
func NewSearchMeta(params Params, total int) SearchMeta {
	meta := NewMeta(params, total)
	return SearchMeta{
		Total:      meta.Total,
		To:         params.Page * params.Take,
		Page:       meta.Page,
		Limit:      meta.Limit,
		TotalPages: meta.TotalPages,
		Next:       meta.Next,
		Prev:       meta.Prev,
	}
}

// NewLibraryMeta builds a [LibraryMeta] for the window and total count.
func NewLibraryMeta(params Params, total int) LibraryMeta {
	meta := LibraryMeta{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Take,
		TotalPages: TotalPages(total, params.Take),
	}

	if params.Page < meta.TotalPages {
		next := params.Page + 1
		meta.Next = &next
	}
	if params.Page > 1 {
		prev := params.Page - 1
		meta.Prev = &prev
	}

	return meta
}
