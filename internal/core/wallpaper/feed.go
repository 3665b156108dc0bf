// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wallpaper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/taibuivan/mangashelf/internal/platform/constants"
)

// Feed is the subset of a Pinterest board feed used for imports.
type Feed struct {
	Title  string
	Images []string
}

// FeedReader fetches and parses a board feed.
type FeedReader interface {
	Read(context context.Context, url string) (*Feed, error)
}

// # RSS Reader

// RSSReader is the HTTP backed [FeedReader].
type RSSReader struct {
	parser *gofeed.Parser
}

// NewRSSReader constructs a reader with a bounded request timeout.
func NewRSSReader(timeout time.Duration) *RSSReader {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = constants.AppName

	return &RSSReader{parser: parser}
}

func (reader *RSSReader) Read(context context.Context, url string) (*Feed, error) {
	document, err := reader.parser.ParseURLWithContext(url, context)
	if err != nil {
		return nil, fmt.Errorf("wallpaper: fetch feed: %w", err)
	}
	return newFeed(document), nil
}

/*
ParseFeed decodes an RSS or Atom document into a [Feed].

Each item contributes one image: an image enclosure, the item image, or the
first <img> in its HTML description, in that order. Items without an image
are skipped and duplicates are dropped.
*/
func ParseFeed(body io.Reader) (*Feed, error) {
	document, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("wallpaper: decode feed: %w", err)
	}
	return newFeed(document), nil
}

func newFeed(document *gofeed.Feed) *Feed {
	feed := &Feed{Title: strings.TrimSpace(document.Title)}
	seen := make(map[string]struct{})

	for _, item := range document.Items {
		url := itemImage(item)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		feed.Images = append(feed.Images, url)
	}

	return feed
}

func itemImage(item *gofeed.Item) string {
	for _, enclosure := range item.Enclosures {
		if enclosure.URL != "" && strings.HasPrefix(enclosure.Type, "image/") {
			return enclosure.URL
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if src := firstImage(item.Description); src != "" {
		return src
	}
	return firstImage(item.Content)
}

// firstImage returns the src of the first <img> in an HTML fragment.
func firstImage(fragment string) string {
	if fragment == "" {
		return ""
	}

	tokens := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokens.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, more := tokens.TagName()
			if string(name) != "img" {
				continue
			}
			for more {
				var key, value []byte
				key, value, more = tokens.TagAttr()
				if string(key) == "src" && len(value) > 0 {
					return string(value)
				}
			}
		}
	}
}
