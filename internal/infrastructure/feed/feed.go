// Package feed provides functionality to fetch and parse RSS/Atom feeds.
package feed

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/feedreader/internal/domain/reading"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// UserAgent is sent with every feed request.
const UserAgent = "feedreader/1.0"

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = UserAgent
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// FetchWithTimeout parses a feed from the given URL with timeout.
func FetchWithTimeout(ctx context.Context, url string, timeout time.Duration) (*reading.Feed, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return FetchWithContext(ctx, url)
}

// FetchWithContext parses a feed from the given URL with context.
func FetchWithContext(ctx context.Context, url string) (*reading.Feed, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("feed url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, err
	}

	f := new(reading.Feed{
		Title: parsed.Title,
		URL:   url,
		Items: make([]reading.Item, len(parsed.Items)),
	})

	for i, item := range parsed.Items {
		pub := item.Published
		if pub == "" {
			pub = item.Updated
		}
		var date time.Time
		if item.PublishedParsed != nil {
			date = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			date = *item.UpdatedParsed
		}
		var author string
		if item.Author != nil {
			author = item.Author.Name
		}

		f.Items[i] = reading.Item{
			GUID:        item.GUID,
			Title:       item.Title,
			Link:        item.Link,
			Author:      author,
			Published:   pub,
			Description: item.Description,
			Content:     item.Content,
			Date:        date,
			FeedTitle:   parsed.Title,
			FeedURL:     url,
		}
	}

	return f, nil
}

// Fetcher implements the usecase.FeedFetcher interface.
type Fetcher struct {
	Timeout time.Duration
}

// Fetch fetches a single feed, bounded by the fetcher's timeout.
func (f Fetcher) Fetch(ctx context.Context, url string) (*reading.Feed, error) {
	return FetchWithTimeout(ctx, url, f.Timeout)
}
