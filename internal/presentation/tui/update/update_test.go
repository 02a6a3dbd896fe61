package update

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/feedreader/internal/application/usecase"
	"github.com/tesso57/feedreader/internal/domain/reading"
	"github.com/tesso57/feedreader/internal/domain/subscription"
	"github.com/tesso57/feedreader/internal/presentation/tui/presenter"
	"github.com/tesso57/feedreader/internal/presentation/tui/state"
)

type stubLoader struct {
	calls []int
}

func (l *stubLoader) Load(_ context.Context, index int) usecase.LoadResult {
	l.calls = append(l.calls, index)
	return usecase.LoadResult{
		Index:   index,
		Title:   "Feed",
		Entries: 1,
		Items:   []reading.Item{{Title: "Entry", Link: "https://example.com/e"}},
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newUpdateTestState() *state.ModelState {
	s := newLayoutTestState()
	s.Feeds = []subscription.Source{
		{Name: "Alpha", URL: "https://example.com/a"},
		{Name: "Beta", URL: "https://example.com/b"},
	}
	presenter.ApplyFeedList(&s.FeedList, s.Feeds)
	return s
}

func TestHandleKeyMsg_ToggleMenu(t *testing.T) {
	s := newUpdateTestState()

	if _, handled := HandleKeyMsg(s, runeKey('m'), Deps{}); !handled {
		t.Fatal("toggle key should be handled")
	}
	if s.MenuHidden || s.Session != state.FeedView {
		t.Fatalf("menu should be shown and focused: hidden=%v session=%v", s.MenuHidden, s.Session)
	}

	HandleKeyMsg(s, runeKey('m'), Deps{})
	if !s.MenuHidden || s.Session != state.ArticleView {
		t.Fatalf("menu should be hidden again: hidden=%v session=%v", s.MenuHidden, s.Session)
	}
}

func TestHandleKeyMsg_OpenFeedLoadsAndHidesMenu(t *testing.T) {
	s := newUpdateTestState()
	ToggleMenu(s)
	s.FeedList.Select(1)

	loader := &stubLoader{}
	cmd, handled := HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, Deps{Loader: loader})
	if !handled || cmd == nil {
		t.Fatal("open should return a load command")
	}
	if !s.MenuHidden || !s.Loading {
		t.Fatalf("expected hidden menu and loading state: hidden=%v loading=%v", s.MenuHidden, s.Loading)
	}

	msg := LoadFeedCmd(loader, 1)()
	loaded, ok := msg.(FeedLoadedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	HandleFeedLoadedMsg(s, loaded)

	if s.Loading || s.Current != 1 || s.Title != "Feed" {
		t.Fatalf("unexpected state after load: loading=%v current=%d title=%q", s.Loading, s.Current, s.Title)
	}
	if len(s.ArticleList.Items()) != 1 {
		t.Fatalf("expected 1 article, got %d", len(s.ArticleList.Items()))
	}
	if s.Status != "1 entries" {
		t.Fatalf("Status = %q", s.Status)
	}
}

func TestHandleKeyMsg_OpenArticle(t *testing.T) {
	s := newUpdateTestState()
	HandleFeedLoadedMsg(s, FeedLoadedMsg{Result: (&stubLoader{}).Load(context.Background(), 0)})

	var opened string
	deps := Deps{OpenBrowser: func(url string) error {
		opened = url
		return nil
	}}
	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, deps)
	if opened != "https://example.com/e" {
		t.Fatalf("opened %q", opened)
	}

	deps.OpenBrowser = func(string) error { return errors.New("no browser") }
	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, deps)
	if s.Err == nil {
		t.Fatal("expected browser error to be surfaced")
	}
}

func TestHandleKeyMsg_Refresh(t *testing.T) {
	s := newUpdateTestState()
	s.Current = 1

	cmd, handled := HandleKeyMsg(s, runeKey('r'), Deps{Loader: &stubLoader{}})
	if !handled || cmd == nil || !s.Loading {
		t.Fatal("refresh should start a load")
	}

	cmd, _ = HandleKeyMsg(s, runeKey('r'), Deps{Loader: &stubLoader{}})
	if cmd != nil {
		t.Fatal("refresh should be ignored while loading")
	}
}

func TestHandleKeyMsg_QuitAndHelp(t *testing.T) {
	s := newUpdateTestState()

	cmd, handled := HandleKeyMsg(s, runeKey('q'), Deps{})
	if !handled || cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit command should produce tea.QuitMsg")
	}

	HandleKeyMsg(s, runeKey('?'), Deps{})
	if !s.Help.ShowAll {
		t.Fatal("help should be expanded")
	}
}

func TestHandleKeyMsg_UnknownKeyFallsThrough(t *testing.T) {
	s := newUpdateTestState()
	if _, handled := HandleKeyMsg(s, runeKey('z'), Deps{}); handled {
		t.Fatal("unknown key should not be handled")
	}
}

func TestHandleFeedLoadedMsg_Error(t *testing.T) {
	s := newUpdateTestState()
	s.Loading = true
	HandleFeedLoadedMsg(s, FeedLoadedMsg{Result: usecase.LoadResult{
		Index:  1,
		Source: subscription.Source{Name: "Beta"},
		Err:    errors.New("boom"),
	}})

	if s.Loading || s.Err == nil {
		t.Fatalf("expected error state: loading=%v err=%v", s.Loading, s.Err)
	}
	if s.Title != "Beta" || len(s.ArticleList.Items()) != 0 {
		t.Fatalf("unexpected title %q or items %d", s.Title, len(s.ArticleList.Items()))
	}
}

func TestHandleFeedLoadedMsg_FromCache(t *testing.T) {
	s := newUpdateTestState()
	HandleFeedLoadedMsg(s, FeedLoadedMsg{Result: usecase.LoadResult{Title: "Alpha", Entries: 2, FromCache: true}})
	if s.Status != "2 entries (offline, from cache)" {
		t.Fatalf("Status = %q", s.Status)
	}
}

func TestLoadFeedCmd_NilLoader(t *testing.T) {
	msg := LoadFeedCmd(nil, 0)().(FeedLoadedMsg)
	if msg.Result.Err == nil {
		t.Fatal("expected error without loader")
	}
}

func TestHandleWindowSize(t *testing.T) {
	s := newUpdateTestState()
	HandleWindowSize(s, tea.WindowSizeMsg{Width: 90, Height: 30})
	if s.Width != 90 || s.Height != 30 {
		t.Fatalf("size not stored: %dx%d", s.Width, s.Height)
	}
	if s.ArticleList.Width() != 90 {
		t.Fatalf("article list width = %d, want 90", s.ArticleList.Width())
	}
}
