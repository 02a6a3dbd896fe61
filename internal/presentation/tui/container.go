// Package tui provides the terminal reader: a feed menu beside the entries
// of the loaded feed.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/feedreader/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/feedreader/internal/presentation/tui/components/main"
	"github.com/tesso57/feedreader/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/feedreader/internal/presentation/tui/metrics"
	"github.com/tesso57/feedreader/internal/presentation/tui/state"
	"github.com/tesso57/feedreader/internal/presentation/tui/textutil"
	"github.com/tesso57/feedreader/internal/presentation/tui/update"
	"github.com/tesso57/feedreader/internal/presentation/tui/view"
)

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	return sidebar.Props{
		Hidden: m.state.MenuHidden,
		View:   m.state.FeedList.View(),
		Width:  m.state.FeedList.Width(),
		Height: m.state.FeedList.Height(),
		Active: m.state.Session == state.FeedView,
		Title:  "Feeds",
		Accent: lipgloss.Color(m.settings.Theme.Accent),
	}
}

func (m *Model) buildHeaderProps() header.Props {
	if !headerVisible(m.state) {
		return header.Props{}
	}
	width := update.MainWidth(m.state) - metrics.HeaderWidthPadding
	var link string
	if m.state.Current >= 0 && m.state.Current < len(m.state.Feeds) {
		link = m.state.Feeds[m.state.Current].URL
	}
	return header.Props{
		Visible:   true,
		FeedTitle: headerLine(m.state.Title, width),
		Link:      headerLine(link, width),
		Color:     lipgloss.Color(m.settings.Theme.FeedName),
	}
}

func (m *Model) buildMainProps() mainview.Props {
	var body string
	switch {
	case m.state.Loading:
		body = fmt.Sprintf("\n\n   %s Loading feed...", m.state.Spinner.View())
	case m.state.Err != nil:
		body = fmt.Sprintf("Error: %v\n\n%s", m.state.Err, m.state.ArticleList.View())
	case len(m.state.Feeds) == 0:
		body = "No feeds configured."
	case len(m.state.ArticleList.Items()) == 0:
		body = "No entries."
	default:
		body = m.state.ArticleList.View()
	}

	headerHeight := 0
	if headerVisible(m.state) {
		headerHeight = metrics.HeaderLines
	}

	return mainview.Props{
		Width:  m.state.ArticleList.Width(),
		Height: m.state.ArticleList.Height() + headerHeight,
		Body:   body,
	}
}

func (m *Model) buildFooterProps() string {
	helpText := m.state.Help.View(&m.state.Keys)
	return state.FooterText(m.state.Loading, m.state.Status, helpText)
}

func headerVisible(st *state.ModelState) bool {
	return st != nil && st.Title != ""
}

func headerLine(text string, width int) string {
	return textutil.Truncate(textutil.SingleLine(text), width)
}
