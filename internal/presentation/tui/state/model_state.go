package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session     Session
	MenuHidden  bool
	FeedList    list.Model
	ArticleList list.Model
	Help        help.Model
	Spinner     spinner.Model
	Loading     bool
	Keys        KeyMap
	Width       int
	Height      int
	Current     int
	Title       string
	Status      string
	Err         error
	Feeds       []subscription.Source
}
