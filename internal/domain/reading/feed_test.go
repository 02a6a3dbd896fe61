package reading

import (
	"testing"
	"time"
)

func TestItemKey(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{name: "guid", item: Item{GUID: "id-1", Link: "https://example.com/1"}, want: "id-1"},
		{name: "link fallback", item: Item{Link: " https://example.com/1 "}, want: "https://example.com/1"},
		{name: "blank guid", item: Item{GUID: "  ", Link: "https://example.com/2"}, want: "https://example.com/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Key(); got != tt.want {
				t.Fatalf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeedSorted(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &Feed{Items: []Item{
		{Title: "old", Date: base},
		{Title: "undated"},
		{Title: "new", Date: base.Add(time.Hour)},
	}}

	got := f.Sorted()
	want := []string{"new", "old", "undated"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("Sorted()[%d] = %q, want %q", i, got[i].Title, title)
		}
	}
	if f.Items[0].Title != "old" {
		t.Fatal("Sorted must not reorder the receiver")
	}
}

func TestFeedSorted_Nil(t *testing.T) {
	var f *Feed
	if got := f.Sorted(); got != nil {
		t.Fatalf("Sorted() on nil feed = %v, want nil", got)
	}
}
