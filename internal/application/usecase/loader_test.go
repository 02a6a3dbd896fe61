package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/feedreader/internal/domain/reading"
	"github.com/tesso57/feedreader/internal/domain/subscription"
)

type recordingRenderer struct {
	mu     sync.Mutex
	titles []string
	errs   []error
}

func (r *recordingRenderer) RenderFeed(_ subscription.Source, title string, _ []reading.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
}

func (r *recordingRenderer) RenderError(_ subscription.Source, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, "error")
	r.errs = append(r.errs, err)
}

func (r *recordingRenderer) rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

// gatedFetcher blocks fetches for URLs listed in gates until the gate closes.
type gatedFetcher struct {
	stubFeedFetcher
	gates map[string]chan struct{}
}

func (g gatedFetcher) Fetch(ctx context.Context, url string) (*reading.Feed, error) {
	if gate, ok := g.gates[url]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.stubFeedFetcher.Fetch(ctx, url)
}

func testSources() []subscription.Source {
	return []subscription.Source{
		{Name: "First", URL: "https://example.com/first"},
		{Name: "Second", URL: "https://example.com/second"},
	}
}

func testFeeds() map[string]*reading.Feed {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return map[string]*reading.Feed{
		"https://example.com/first": {Title: "First Feed", Items: []reading.Item{
			{GUID: "a", Title: "A", Date: base},
			{GUID: "b", Title: "B", Date: base.Add(time.Hour)},
			{GUID: "c", Title: "C", Date: base.Add(2 * time.Hour)},
		}},
		"https://example.com/second": {Title: "Second Feed", Items: []reading.Item{
			{GUID: "z", Title: "Z", Date: base},
		}},
	}
}

func newTestLoader(fetcher FeedFetcher, renderer FeedRenderer, maxEntries int) *Loader {
	subs := NewSubscriptionService(&stubSubscriptionRepo{feeds: testSources()})
	return NewLoader(subs, NewReadingService(fetcher, nil, nil), renderer, maxEntries, nil)
}

func TestLoader_LoadRendersFeed(t *testing.T) {
	renderer := &recordingRenderer{}
	l := newTestLoader(stubFeedFetcher{feeds: testFeeds()}, renderer, 0)

	res := l.Load(context.Background(), 0)

	require.NoError(t, res.Err)
	assert.Equal(t, "First Feed", res.Title)
	assert.Equal(t, 3, res.Entries)
	assert.Equal(t, []string{"First Feed"}, renderer.rendered())
}

func TestLoader_MaxEntries(t *testing.T) {
	l := newTestLoader(stubFeedFetcher{feeds: testFeeds()}, &recordingRenderer{}, 2)
	res := l.Load(context.Background(), 0)
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Entries)
}

func TestLoader_LoadFeedCallsDoneOnce(t *testing.T) {
	renderer := &recordingRenderer{}
	l := newTestLoader(stubFeedFetcher{feeds: testFeeds()}, renderer, 0)

	var calls int
	var mu sync.Mutex
	done := make(chan LoadResult, 2)
	l.LoadFeed(context.Background(), 1, func(res LoadResult) {
		mu.Lock()
		calls++
		mu.Unlock()
		done <- res
	})

	select {
	case res := <-done:
		require.NoError(t, res.Err)
		assert.Equal(t, "Second Feed", res.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("completion callback was not invoked")
	}
	l.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"Second Feed"}, renderer.rendered())
}

func TestLoader_InvalidIndex(t *testing.T) {
	renderer := &recordingRenderer{}
	l := newTestLoader(stubFeedFetcher{feeds: testFeeds()}, renderer, 0)

	done := make(chan LoadResult, 1)
	l.LoadFeed(context.Background(), 7, func(res LoadResult) { done <- res })
	res := <-done

	assert.ErrorIs(t, res.Err, ErrFeedIndex)
	assert.Equal(t, []string{"error"}, renderer.rendered())
}

func TestLoader_FetchError(t *testing.T) {
	renderer := &recordingRenderer{}
	fetcher := stubFeedFetcher{errs: map[string]error{"https://example.com/first": errors.New("boom")}}
	l := newTestLoader(fetcher, renderer, 0)

	res := l.Load(context.Background(), 0)

	assert.EqualError(t, res.Err, "boom")
	assert.Equal(t, "First", res.Source.Name)
	assert.Equal(t, []string{"error"}, renderer.rendered())
}

func TestLoader_RendersInRequestOrder(t *testing.T) {
	renderer := &recordingRenderer{}
	gate := make(chan struct{})
	fetcher := gatedFetcher{
		stubFeedFetcher: stubFeedFetcher{feeds: testFeeds()},
		gates:           map[string]chan struct{}{"https://example.com/first": gate},
	}
	l := newTestLoader(fetcher, renderer, 0)

	firstDone := make(chan struct{})
	secondDone := make(chan struct{})
	l.LoadFeed(context.Background(), 0, func(LoadResult) { close(firstDone) })
	l.LoadFeed(context.Background(), 1, func(LoadResult) { close(secondDone) })

	select {
	case <-secondDone:
		t.Fatal("second load completed before the first was rendered")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	<-firstDone
	<-secondDone
	l.Wait()

	assert.Equal(t, []string{"First Feed", "Second Feed"}, renderer.rendered())
}

func TestLoader_NilRendererAndDone(t *testing.T) {
	l := newTestLoader(stubFeedFetcher{feeds: testFeeds()}, nil, 0)
	l.LoadFeed(context.Background(), 0, nil)
	l.Wait()
}
