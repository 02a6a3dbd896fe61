// Package page holds the reader's document: the menu, the header and the
// feed container that loads render into.
package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/tesso57/feedreader/internal/application/usecase"
	"github.com/tesso57/feedreader/internal/domain/reading"
	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// Selectors and class names the document exposes.
const (
	MenuHiddenClass  = "menu-hidden"
	MenuIconSelector = ".menu-icon-link"
	FeedSelector     = ".feed"
	EntrySelector    = ".feed .entry"
	HeaderSelector   = ".header-title"
	// FeedLinkSelector matches the per-feed submit buttons in the menu.
	FeedLinkSelector = ".feed-list button[data-id]"
)

// FeedLink returns the selector of the menu entry that loads feed index.
func FeedLink(index int) string {
	return fmt.Sprintf(`.feed-list button[data-id="%d"]`, index)
}

const (
	defaultTitle   = "Feeds"
	snippetRunes   = 240
	menuIconClass  = "menu-icon-link"
	feedListMarker = "feed-list"
)

// ErrNoElement is returned by Click when the selector matches nothing.
var ErrNoElement = errors.New("no element matches selector")

// FeedLoader starts an asynchronous feed load.
type FeedLoader interface {
	LoadFeed(ctx context.Context, index int, done func(usecase.LoadResult))
}

// Page is safe for concurrent use.
type Page struct {
	mu      sync.RWMutex
	title   string
	sources []subscription.Source
	classes []string
	feed    template.HTML
	loader  FeedLoader
}

// New returns a freshly loaded page: menu hidden, container empty.
func New(sources []subscription.Source) *Page {
	return &Page{
		title:   defaultTitle,
		sources: slices.Clone(sources),
		classes: []string{MenuHiddenClass},
	}
}

// Bind attaches the loader used when a feed link is clicked.
func (p *Page) Bind(loader FeedLoader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loader = loader
}

// SetSources replaces the menu's feed list.
func (p *Page) SetSources(sources []subscription.Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources = slices.Clone(sources)
}

// MenuHidden reports whether the menu is collapsed.
func (p *Page) MenuHidden() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Contains(p.classes, MenuHiddenClass)
}

// ToggleMenu flips the body's menu-hidden class.
func (p *Page) ToggleMenu() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toggleClass(MenuHiddenClass)
}

// HideMenu adds the menu-hidden class if absent.
func (p *Page) HideMenu() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Contains(p.classes, MenuHiddenClass) {
		p.classes = append(p.classes, MenuHiddenClass)
	}
}

func (p *Page) toggleClass(name string) {
	if i := slices.Index(p.classes, name); i >= 0 {
		p.classes = slices.Delete(p.classes, i, i+1)
		return
	}
	p.classes = append(p.classes, name)
}

// Click dispatches a click on the first element matching selector. The menu
// icon toggles the menu; a feed link hides the menu and starts loading that
// feed in the background.
func (p *Page) Click(ctx context.Context, selector string) error {
	doc, err := p.Document()
	if err != nil {
		return err
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrNoElement, selector)
	}

	if sel.HasClass(menuIconClass) || sel.Closest(MenuIconSelector).Length() > 0 {
		p.ToggleMenu()
		return nil
	}

	if sel.Closest("."+feedListMarker).Length() > 0 {
		link := sel
		if _, ok := link.Attr("data-id"); !ok {
			link = sel.Closest("[data-id]")
		}
		raw, ok := link.Attr("data-id")
		if !ok {
			return nil
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid feed link id %q: %w", raw, err)
		}
		p.mu.RLock()
		loader := p.loader
		p.mu.RUnlock()
		if loader == nil {
			return errors.New("page has no feed loader bound")
		}
		p.HideMenu()
		loader.LoadFeed(context.WithoutCancel(ctx), index, nil)
	}
	return nil
}

// RenderFeed replaces the container with one entry per item.
func (p *Page) RenderFeed(source subscription.Source, title string, items []reading.Item) {
	entries := make([]entryView, 0, len(items))
	for _, item := range items {
		entries = append(entries, entryView{
			Title:   item.Title,
			Link:    item.Link,
			Author:  item.Author,
			Date:    item.Published,
			Snippet: snippet(item),
		})
	}

	var buf bytes.Buffer
	if err := entriesTemplate.Execute(&buf, entries); err != nil {
		p.RenderError(source, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = headerTitle(source, title)
	p.feed = template.HTML(buf.String())
}

// RenderError replaces the container with an error notice.
func (p *Page) RenderError(source subscription.Source, loadErr error) {
	var buf bytes.Buffer
	_ = errorTemplate.Execute(&buf, errorView{Name: source.Name, Err: loadErr.Error()})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = headerTitle(source, "")
	p.feed = template.HTML(buf.String())
}

func headerTitle(source subscription.Source, title string) string {
	switch {
	case source.Name != "":
		return source.Name
	case title != "":
		return title
	default:
		return defaultTitle
	}
}

// HTML renders the whole document.
func (p *Page) HTML() (string, error) {
	p.mu.RLock()
	view := documentView{
		Title:     p.title,
		BodyClass: strings.Join(p.classes, " "),
		Feeds:     slices.Clone(p.sources),
		Feed:      p.feed,
	}
	p.mu.RUnlock()

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document parses the current document for querying.
func (p *Page) Document() (*goquery.Document, error) {
	html, err := p.HTML()
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// HasBodyClass reports whether the body element carries class.
func (p *Page) HasBodyClass(class string) bool {
	doc, err := p.Document()
	if err != nil {
		return false
	}
	return doc.Find("body").HasClass(class)
}

// Count returns how many elements match selector.
func (p *Page) Count(selector string) int {
	doc, err := p.Document()
	if err != nil {
		return 0
	}
	return doc.Find(selector).Length()
}

// FeedHTML returns the inner HTML of the feed container.
func (p *Page) FeedHTML() (string, error) {
	doc, err := p.Document()
	if err != nil {
		return "", err
	}
	return doc.Find(FeedSelector).Html()
}

// Title returns the header title.
func (p *Page) Title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.title
}

// snippet flattens the item's description (or content) to plain text.
func snippet(item reading.Item) string {
	raw := item.Description
	if strings.TrimSpace(raw) == "" {
		raw = item.Content
	}
	if raw == "" {
		return ""
	}
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= snippetRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:snippetRunes])) + "…"
}
