package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tesso57/feedreader/internal/domain/reading"
	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// FeedRenderer receives the outcome of a load. Implementations replace
// whatever they displayed for the previous load.
type FeedRenderer interface {
	RenderFeed(source subscription.Source, title string, items []reading.Item)
	RenderError(source subscription.Source, err error)
}

// LoadResult describes a finished load.
type LoadResult struct {
	Index     int
	Source    subscription.Source
	Title     string
	Entries   int
	Items     []reading.Item
	FromCache bool
	Err       error
}

// Loader fetches a feed by index and renders it. Fetches run concurrently;
// renders happen in the order loads were requested, so the renderer always
// ends up showing the most recently requested feed.
type Loader struct {
	Subscriptions SubscriptionService
	Reading       ReadingService
	Renderer      FeedRenderer
	MaxEntries    int
	Logger        *slog.Logger

	mu   sync.Mutex
	tail chan struct{}
	wg   sync.WaitGroup
}

// NewLoader constructs a Loader.
func NewLoader(subs SubscriptionService, readingSvc ReadingService, renderer FeedRenderer, maxEntries int, logger *slog.Logger) *Loader {
	return &Loader{
		Subscriptions: subs,
		Reading:       readingSvc,
		Renderer:      renderer,
		MaxEntries:    maxEntries,
		Logger:        logger,
	}
}

// LoadFeed starts loading the feed at index in the background. done, if not
// nil, is called exactly once after the result has been rendered.
func (l *Loader) LoadFeed(ctx context.Context, index int, done func(LoadResult)) {
	prev, cur := l.enqueue()
	l.wg.Go(func() {
		res := l.run(ctx, index, prev, cur)
		if done != nil {
			done(res)
		}
	})
}

// Load loads the feed at index and blocks until it has been rendered.
func (l *Loader) Load(ctx context.Context, index int) LoadResult {
	prev, cur := l.enqueue()
	return l.run(ctx, index, prev, cur)
}

// Wait blocks until every load started with LoadFeed has completed.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) enqueue() (prev, cur chan struct{}) {
	cur = make(chan struct{})
	l.mu.Lock()
	prev, l.tail = l.tail, cur
	l.mu.Unlock()
	return prev, cur
}

func (l *Loader) run(ctx context.Context, index int, prev, cur chan struct{}) LoadResult {
	defer close(cur)
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	res := l.fetch(ctx, index)

	// Preserve request order even when a later fetch finishes first.
	if prev != nil {
		<-prev
	}
	l.render(res)

	log := l.logger().With("index", index, "feed", res.Source.URL, "elapsed", time.Since(start))
	if res.Err != nil {
		log.Warn("feed load failed", "err", res.Err)
	} else {
		log.Info("feed loaded", "entries", res.Entries, "from_cache", res.FromCache)
	}
	return res
}

func (l *Loader) fetch(ctx context.Context, index int) LoadResult {
	out := LoadResult{Index: index}

	source, err := l.Subscriptions.Get(index)
	if err != nil {
		out.Err = err
		return out
	}
	out.Source = source
	l.logger().Debug("loading feed", "index", index, "feed", source.URL)

	fr, err := l.Reading.FetchFeed(ctx, source)
	if err != nil {
		out.Err = err
		return out
	}

	items := fr.Feed.Sorted()
	if l.MaxEntries > 0 && len(items) > l.MaxEntries {
		items = items[:l.MaxEntries]
	}
	out.Items = items
	out.Title = fr.Feed.Title
	out.Entries = len(items)
	out.FromCache = fr.FromCache
	return out
}

func (l *Loader) render(res LoadResult) {
	if l.Renderer == nil {
		return
	}
	if res.Err != nil {
		l.Renderer.RenderError(res.Source, res.Err)
		return
	}
	l.Renderer.RenderFeed(res.Source, res.Title, res.Items)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
