package usecase

import (
	"context"
	"log/slog"

	"github.com/tesso57/feedreader/internal/domain/reading"
	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// FeedFetcher abstracts RSS fetching.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*reading.Feed, error)
}

// EntryCache abstracts persistence of previously fetched entries.
type EntryCache interface {
	Upsert(ctx context.Context, items []reading.Item) error
	LoadByFeed(ctx context.Context, feedURL string, limit int) ([]reading.Item, error)
}

// FetchResult is the outcome of a successful FetchFeed.
type FetchResult struct {
	Feed      *reading.Feed
	FromCache bool
}

// ReadingService coordinates feed fetching and the entry cache.
type ReadingService struct {
	Fetcher FeedFetcher
	Cache   EntryCache
	Logger  *slog.Logger
}

// NewReadingService constructs a ReadingService. cache may be nil.
func NewReadingService(fetcher FeedFetcher, cache EntryCache, logger *slog.Logger) ReadingService {
	return ReadingService{Fetcher: fetcher, Cache: cache, Logger: logger}
}

// FetchFeed fetches a feed and records its items in the cache. When the
// fetch fails and the cache holds entries for the feed, those are returned
// instead.
func (s ReadingService) FetchFeed(ctx context.Context, source subscription.Source) (FetchResult, error) {
	feed, err := s.Fetcher.Fetch(ctx, source.URL)
	if err == nil {
		if feed.Title == "" {
			feed.Title = source.Name
		}
		if s.Cache != nil {
			if cerr := s.Cache.Upsert(ctx, feed.Items); cerr != nil {
				s.logger().Warn("failed to cache entries", "feed", source.URL, "err", cerr)
			}
		}
		return FetchResult{Feed: feed}, nil
	}

	if s.Cache == nil {
		return FetchResult{}, err
	}
	cached, cerr := s.Cache.LoadByFeed(context.WithoutCancel(ctx), source.URL, 0)
	if cerr != nil || len(cached) == 0 {
		return FetchResult{}, err
	}
	s.logger().Warn("fetch failed, serving cached entries", "feed", source.URL, "entries", len(cached), "err", err)
	return FetchResult{
		Feed:      &reading.Feed{Title: source.Name, URL: source.URL, Items: cached},
		FromCache: true,
	}, nil
}

func (s ReadingService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
