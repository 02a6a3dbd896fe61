package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tesso57/feedreader/internal/domain/reading"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManager_UpsertAndLoad(t *testing.T) {
	ctx := context.Background()
	m := openTestManager(t)

	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	items := []reading.Item{
		{GUID: "id1", Title: "Old", FeedURL: "feed1", FeedTitle: "Feed 1", Date: base},
		{GUID: "id2", Title: "New", FeedURL: "feed1", FeedTitle: "Feed 1", Date: base.Add(time.Hour), Author: "Ada"},
		{GUID: "other", Title: "Elsewhere", FeedURL: "feed2"},
		{Title: "No key", FeedURL: "feed1"},
	}
	if err := m.Upsert(ctx, items); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := m.LoadByFeed(ctx, "feed1", 0)
	if err != nil {
		t.Fatalf("LoadByFeed failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadByFeed len = %d, want 2", len(got))
	}
	if got[0].Title != "New" || got[1].Title != "Old" {
		t.Fatalf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].Author != "Ada" || !got[0].Date.Equal(base.Add(time.Hour)) {
		t.Fatalf("fields not round-tripped: %#v", got[0])
	}
}

func TestManager_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	m := openTestManager(t)

	if err := m.Upsert(ctx, []reading.Item{{GUID: "id1", Title: "Draft", FeedURL: "feed"}}); err != nil {
		t.Fatal(err)
	}
	if err := m.Upsert(ctx, []reading.Item{{GUID: "id1", Title: "Final", FeedURL: "feed"}}); err != nil {
		t.Fatal(err)
	}

	got, err := m.LoadByFeed(ctx, "feed", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Final" {
		t.Fatalf("expected single replaced entry, got %#v", got)
	}
}

func TestManager_LoadLimit(t *testing.T) {
	ctx := context.Background()
	m := openTestManager(t)

	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	var items []reading.Item
	for i := range 5 {
		items = append(items, reading.Item{
			Link:    "https://example.com/" + string(rune('a'+i)),
			FeedURL: "feed",
			Date:    base.Add(time.Duration(i) * time.Minute),
		})
	}
	if err := m.Upsert(ctx, items); err != nil {
		t.Fatal(err)
	}

	got, err := m.LoadByFeed(ctx, "feed", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadByFeed len = %d, want 2", len(got))
	}
	if got[0].Link != "https://example.com/e" {
		t.Fatalf("expected newest first, got %q", got[0].Link)
	}
}

func TestManager_LoadUnknownFeed(t *testing.T) {
	m := openTestManager(t)
	got, err := m.LoadByFeed(context.Background(), "missing", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %d", len(got))
	}
}

func TestManager_UpsertDropsEntriesGoneFromFeed(t *testing.T) {
	ctx := context.Background()
	m := openTestManager(t)

	first := []reading.Item{
		{GUID: "a", Title: "A", FeedURL: "feed"},
		{GUID: "b", Title: "B", FeedURL: "feed"},
		{GUID: "x", Title: "X", FeedURL: "other"},
	}
	if err := m.Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := m.Upsert(ctx, []reading.Item{{GUID: "b", Title: "B2", FeedURL: "feed"}, {GUID: "c", Title: "C", FeedURL: "feed"}}); err != nil {
		t.Fatal(err)
	}

	got, err := m.LoadByFeed(ctx, "feed", 0)
	if err != nil {
		t.Fatal(err)
	}
	titles := map[string]bool{}
	for _, item := range got {
		titles[item.Title] = true
	}
	if len(got) != 2 || !titles["B2"] || !titles["C"] {
		t.Fatalf("cache should mirror the latest fetch, got %#v", got)
	}

	other, err := m.LoadByFeed(ctx, "other", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 {
		t.Fatalf("other feeds must be untouched, got %d entries", len(other))
	}
}
