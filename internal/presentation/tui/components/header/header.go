// Package header provides the main pane header component.
package header

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Visible   bool
	FeedTitle string
	Link      string
	Color     lipgloss.Color
}

// Render renders the header component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	color := p.Color
	if color == "" {
		color = lipgloss.Color("240")
	}
	text := p.FeedTitle
	if p.Link != "" {
		text = fmt.Sprintf("%s\n%s", p.FeedTitle, p.Link)
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
