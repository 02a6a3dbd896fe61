// Package listview provides list item delegates for the view layer.
package listview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ArticleItem interface for items that can be rendered by ArticleDelegate.
type ArticleItem interface {
	list.Item
	Title() string
	Description() string
}

// ArticleDelegate renders an entry as a title line and a faint detail line.
type ArticleDelegate struct {
	Styles list.DefaultItemStyles
}

// NewArticleDelegate creates a new ArticleDelegate.
func NewArticleDelegate() *ArticleDelegate {
	return &ArticleDelegate{
		Styles: withItemPadding(list.NewDefaultItemStyles()),
	}
}

// Height returns the height of the item.
func (d *ArticleDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d *ArticleDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d *ArticleDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *ArticleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ArticleItem)
	if !ok {
		return
	}

	style := itemStyle(d.Styles, m, index)
	title := truncateItemText(m, style, i.Title())
	desc := truncateItemText(m, d.Styles.NormalDesc, singleLine(i.Description()))
	desc = lipgloss.NewStyle().Faint(true).Render(desc)

	_, _ = fmt.Fprintf(w, "%s\n%s", style.Render(title), d.Styles.NormalDesc.Render(desc))
}
