// Package reading defines core reading models.
package reading

import (
	"slices"
	"strings"
	"time"
)

// Item represents a single RSS item.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Author      string
	Published   string
	Description string
	Content     string
	Date        time.Time
	FeedTitle   string
	FeedURL     string
}

// Key returns the identifier used to deduplicate items: the GUID, or the link
// when the feed does not provide one.
func (i Item) Key() string {
	if guid := strings.TrimSpace(i.GUID); guid != "" {
		return guid
	}
	return strings.TrimSpace(i.Link)
}

// Feed represents a parsed RSS feed.
type Feed struct {
	Title string
	Items []Item
	URL   string
}

// Sorted returns a copy of the items, newest first. Undated items keep their
// relative order after dated ones.
func (f *Feed) Sorted() []Item {
	if f == nil {
		return nil
	}
	items := slices.Clone(f.Items)
	slices.SortStableFunc(items, func(a, b Item) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return 0
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		}
		return b.Date.Compare(a.Date)
	})
	return items
}
