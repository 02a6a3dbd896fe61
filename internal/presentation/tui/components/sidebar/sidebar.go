// Package sidebar provides the feed menu component.
package sidebar

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the sidebar component.
type Props struct {
	Hidden bool
	View   string
	Width  int
	Height int
	Title  string
	Active bool
	Accent lipgloss.Color
}

// Render renders the sidebar component. A hidden sidebar renders nothing.
func Render(p Props) string {
	if p.Hidden || p.Width <= 0 {
		return ""
	}
	accent := p.Accent
	if accent == "" {
		accent = lipgloss.Color("205")
	}

	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color("63"))

	if p.Active {
		sidebarStyle = sidebarStyle.BorderForeground(accent)
	}

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingBottom(1).
		Foreground(accent)

	return sidebarStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(p.Title),
		p.View,
	))
}
