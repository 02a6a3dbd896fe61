// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/feedreader/internal/domain/reading"
	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// Item is a view model for list items.
type Item struct {
	TitleText     string
	Desc          string
	Link          string
	Published     string
	Author        string
	FeedTitleText string
	Index         int
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// URL returns the item's URL.
func (i *Item) URL() string { return i.Link }

// FeedTitle returns the feed title for the item.
func (i *Item) FeedTitle() string { return i.FeedTitleText }

// Description returns a formatted description for list display.
func (i *Item) Description() string {
	if i.Published != "" {
		return fmt.Sprintf("%s - %s", i.Published, i.Desc)
	}
	return i.Desc
}

// BuildFeedListItems builds list items for the feed menu.
func BuildFeedListItems(feeds []subscription.Source) []list.Item {
	items := make([]list.Item, len(feeds))
	for i, f := range feeds {
		items[i] = &Item{
			TitleText:     fmt.Sprintf("%d. %s", i+1, f.Name),
			Link:          f.URL,
			FeedTitleText: f.Name,
			Index:         i,
		}
	}
	return items
}

// ApplyFeedList updates the list model with feed items.
func ApplyFeedList(model *list.Model, feeds []subscription.Source) {
	model.SetItems(BuildFeedListItems(feeds))
}

// BuildArticleListItems builds list items for loaded entries.
func BuildArticleListItems(entries []reading.Item) []list.Item {
	result := make([]list.Item, len(entries))
	for i, it := range entries {
		result[i] = &Item{
			TitleText:     it.Title,
			Desc:          it.Description,
			Link:          it.Link,
			Published:     it.Published,
			Author:        it.Author,
			FeedTitleText: it.FeedTitle,
			Index:         i,
		}
	}
	return result
}

// ApplyArticleList replaces the article list with the loaded entries.
func ApplyArticleList(model *list.Model, title string, entries []reading.Item) {
	model.SetItems(BuildArticleListItems(entries))
	model.Title = title
	model.ResetSelected()
}
