package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/feedreader/internal/presentation/tui/metrics"
	"github.com/tesso57/feedreader/internal/presentation/tui/state"
)

type layoutMetrics struct {
	sidebarWidth      int
	mainWidth         int
	sidebarListHeight int
	mainListHeight    int
}

// UpdateListSizes recomputes list dimensions from the window size.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.FeedList.SetSize(layout.sidebarWidth, layout.sidebarListHeight)
	s.ArticleList.SetSize(layout.mainWidth, layout.mainListHeight)
}

// MainWidth returns the width available to the main pane.
func MainWidth(s *state.ModelState) int {
	return buildLayoutMetrics(s).mainWidth
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	footerHeight := footerHeight(s)
	availableHeight := clampMin(s.Height-footerHeight, 1)

	mainListHeight := clampMin(availableHeight-metrics.HeaderLines, 1)
	sidebarListHeight := clampMin(availableHeight-metrics.SidebarTitleLines, 1)

	sidebarWidth := 0
	mainWidth := clampMin(s.Width, 1)
	if !s.MenuHidden {
		sidebarWidth = s.Width / 3
		mainWidth = clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth, 1)
	}

	sidebarListHeight = reservePaginationSpace(s.FeedList, sidebarListHeight)
	mainListHeight = reservePaginationSpace(s.ArticleList, mainListHeight)

	return layoutMetrics{
		sidebarWidth:      sidebarWidth,
		mainWidth:         mainWidth,
		sidebarListHeight: sidebarListHeight,
		mainListHeight:    mainListHeight,
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	return lipgloss.Height(state.FooterText(s.Loading, s.Status, s.Help.View(&s.Keys)))
}

func reservePaginationSpace(m list.Model, height int) int {
	if height <= 1 || !m.ShowPagination() {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems()) > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, minValue int) int {
	if value < minValue {
		return minValue
	}
	return value
}
