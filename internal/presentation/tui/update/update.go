// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/feedreader/internal/application/usecase"
	"github.com/tesso57/feedreader/internal/presentation/tui/intent"
	"github.com/tesso57/feedreader/internal/presentation/tui/presenter"
	"github.com/tesso57/feedreader/internal/presentation/tui/state"
)

// FeedLoader loads a feed by index and blocks until it is rendered.
type FeedLoader interface {
	Load(ctx context.Context, index int) usecase.LoadResult
}

// Deps groups external dependencies for updates.
type Deps struct {
	Loader      FeedLoader
	OpenBrowser func(string) error
}

// FeedLoadedMsg is emitted after a feed load finishes.
type FeedLoadedMsg struct {
	Result usecase.LoadResult
}

// LoadFeedCmd creates a command that loads the feed at index.
func LoadFeedCmd(loader FeedLoader, index int) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return FeedLoadedMsg{Result: usecase.LoadResult{Index: index, Err: fmt.Errorf("loader is not configured")}}
		}
		return FeedLoadedMsg{Result: loader.Load(context.Background(), index)}
	}
}

// StartLoad marks the state as loading and returns the load command.
func StartLoad(s *state.ModelState, deps Deps, index int) tea.Cmd {
	s.Loading = true
	s.Err = nil
	s.Status = ""
	return tea.Batch(s.Spinner.Tick, LoadFeedCmd(deps.Loader, index))
}

// HandleKeyMsg processes key input. The second return value reports whether
// the key was consumed; unconsumed keys go to the focused list.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if focusedList(s).FilterState() == list.Filtering {
		return nil, false
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	switch parsed.Type {
	case intent.Quit:
		return tea.Quit, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	case intent.ToggleMenu:
		ToggleMenu(s)
		return nil, true
	case intent.Open:
		return handleOpen(s, deps), true
	case intent.Refresh:
		if len(s.Feeds) == 0 || s.Loading {
			return nil, true
		}
		return StartLoad(s, deps, s.Current), true
	default:
		return nil, false
	}
}

// ToggleMenu shows or hides the feed menu and moves focus with it.
func ToggleMenu(s *state.ModelState) {
	s.MenuHidden = !s.MenuHidden
	if s.MenuHidden {
		s.Session = state.ArticleView
	} else {
		s.Session = state.FeedView
		s.FeedList.Select(s.Current)
	}
	UpdateListSizes(s)
}

func handleOpen(s *state.ModelState, deps Deps) tea.Cmd {
	switch s.Session {
	case state.FeedView:
		item, ok := s.FeedList.SelectedItem().(*presenter.Item)
		if !ok {
			return nil
		}
		s.MenuHidden = true
		s.Session = state.ArticleView
		UpdateListSizes(s)
		return StartLoad(s, deps, item.Index)
	case state.ArticleView:
		item, ok := s.ArticleList.SelectedItem().(*presenter.Item)
		if !ok || item.Link == "" || deps.OpenBrowser == nil {
			return nil
		}
		if err := deps.OpenBrowser(item.Link); err != nil {
			s.Err = fmt.Errorf("failed to open browser: %w", err)
		}
		return nil
	default:
		return nil
	}
}

// HandleFeedLoadedMsg applies a finished load to the state.
func HandleFeedLoadedMsg(s *state.ModelState, msg FeedLoadedMsg) {
	s.Loading = false
	res := msg.Result
	if res.Err != nil {
		s.Err = res.Err
		s.Status = ""
		if res.Source.Name != "" {
			s.Title = res.Source.Name
		}
		presenter.ApplyArticleList(&s.ArticleList, s.Title, nil)
		UpdateListSizes(s)
		return
	}

	s.Err = nil
	s.Current = res.Index
	s.Title = res.Title
	presenter.ApplyArticleList(&s.ArticleList, res.Title, res.Items)
	s.Status = fmt.Sprintf("%d entries", res.Entries)
	if res.FromCache {
		s.Status += " (offline, from cache)"
	}
	UpdateListSizes(s)
}

// HandleWindowSize updates sizes on terminal resize.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height
	UpdateListSizes(s)
}

func focusedList(s *state.ModelState) *list.Model {
	if s.Session == state.FeedView {
		return &s.FeedList
	}
	return &s.ArticleList
}
