package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/feedreader/internal/application/settings"
	"github.com/tesso57/feedreader/internal/domain/subscription"
	"github.com/tesso57/feedreader/internal/presentation/tui/presenter"
	"github.com/tesso57/feedreader/internal/presentation/tui/state"
	"github.com/tesso57/feedreader/internal/presentation/tui/update"
	"github.com/tesso57/feedreader/internal/presentation/tui/view"
	listview "github.com/tesso57/feedreader/internal/presentation/tui/view/list"
)

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	deps     update.Deps
	state    *state.ModelState
}

// NewModel creates a new application model. The feed menu starts hidden and
// the first feed is loaded on Init.
func NewModel(cfg settings.Settings, feeds []subscription.Source, loader update.FeedLoader) *Model {
	return &Model{
		settings: cfg,
		deps: update.Deps{
			Loader:      loader,
			OpenBrowser: openBrowser,
		},
		state: newModelState(cfg, feeds),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	if len(m.state.Feeds) == 0 {
		return nil
	}
	return update.StartLoad(m.state, m.deps, 0)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps)
		if handled {
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.FeedLoadedMsg:
		update.HandleFeedLoadedMsg(m.state, msg)
	}

	if m.state.Loading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Session {
	case state.FeedView:
		m.state.FeedList, cmd = m.state.FeedList.Update(msg)
		cmds = append(cmds, cmd)
	case state.ArticleView:
		m.state.ArticleList, cmd = m.state.ArticleList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

func newModelState(cfg settings.Settings, feeds []subscription.Source) *state.ModelState {
	st := &state.ModelState{
		Session:     state.ArticleView,
		MenuHidden:  true,
		FeedList:    newFeedList(cfg),
		ArticleList: newArticleList(),
		Help:        help.New(),
		Spinner:     newSpinner(cfg),
		Keys:        state.NewKeyMap(cfg.KeyMap),
		Feeds:       append([]subscription.Source(nil), feeds...),
	}

	st.FeedList.KeyMap.CursorUp = st.Keys.Up
	st.FeedList.KeyMap.CursorDown = st.Keys.Down
	st.ArticleList.KeyMap.CursorUp = st.Keys.Up
	st.ArticleList.KeyMap.CursorDown = st.Keys.Down

	presenter.ApplyFeedList(&st.FeedList, st.Feeds)
	return st
}

func newFeedList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewFeedDelegate(lipgloss.Color(cfg.Theme.FeedName)), 0, 0)
	l.Title = "Feeds"
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()
	return l
}

func newArticleList() list.Model {
	l := list.New([]list.Item{}, listview.NewArticleDelegate(), 0, 0)
	l.Title = "Entries"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}
