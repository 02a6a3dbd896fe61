package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/feedreader/internal/app"
	"github.com/tesso57/feedreader/internal/application/usecase"
	"github.com/tesso57/feedreader/internal/domain/subscription"
	"github.com/tesso57/feedreader/internal/presentation/tui"
	"github.com/tesso57/feedreader/internal/presentation/web"
)

// ServeCmd serves the page over HTTP.
type ServeCmd struct {
	Listen string `help:"Listen address. Overrides the config file."`
}

// Run starts the server and loads the first feed, as the page does on load.
func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := g.container(g.Stderr, app.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = container.Close() }()

	feeds, err := container.Subscriptions.List()
	if err != nil {
		return err
	}
	if len(feeds) > 0 {
		container.Loader.LoadFeed(ctx, 0, nil)
	}

	addr := c.Listen
	if addr == "" {
		addr = container.Settings.Listen
	}
	srv := &web.Server{
		Page:   container.Page,
		Loader: container.Loader,
		Feeds:  container.Subscriptions,
		Logger: container.Logger,
	}
	return srv.ListenAndServe(ctx, addr)
}

// TUICmd opens the terminal reader.
type TUICmd struct{}

// Run starts the bubbletea program. Logs are discarded so they do not
// corrupt the alternate screen.
func (c *TUICmd) Run(g *Globals) error {
	container, err := g.container(io.Discard, app.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = container.Close() }()

	feeds, err := container.Subscriptions.List()
	if err != nil {
		return err
	}
	model := tui.NewModel(container.Settings, feeds, container.Loader)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// FeedsCmd groups subscription management.
type FeedsCmd struct {
	List   FeedsListCmd   `cmd:"" default:"1" help:"List subscribed feeds."`
	Add    FeedsAddCmd    `cmd:"" help:"Subscribe to a feed."`
	Remove FeedsRemoveCmd `cmd:"" help:"Unsubscribe from a feed by index."`
	Check  FeedsCheckCmd  `cmd:"" help:"Check that every feed has a name and a URL."`
}

// FeedsListCmd prints the feeds with their indexes.
type FeedsListCmd struct{}

// Run prints one line per feed.
func (c *FeedsListCmd) Run(g *Globals) error {
	store, err := g.store()
	if err != nil {
		return err
	}
	feeds, err := usecase.NewSubscriptionService(store).List()
	if err != nil {
		return err
	}
	printFeeds(g.Stdout, feeds)
	return nil
}

// FeedsAddCmd adds a feed.
type FeedsAddCmd struct {
	Name string `arg:"" help:"Display name."`
	URL  string `arg:"" name:"url" help:"Feed URL."`
}

// Run validates and saves the new feed.
func (c *FeedsAddCmd) Run(g *Globals) error {
	store, err := g.store()
	if err != nil {
		return err
	}
	feeds, err := usecase.NewSubscriptionService(store).Add(subscription.Source{Name: c.Name, URL: c.URL})
	if err != nil {
		return err
	}
	printFeeds(g.Stdout, feeds)
	return nil
}

// FeedsRemoveCmd removes a feed.
type FeedsRemoveCmd struct {
	Index int `arg:"" help:"Index shown by 'feeds list'."`
}

// Run removes the feed at the index.
func (c *FeedsRemoveCmd) Run(g *Globals) error {
	store, err := g.store()
	if err != nil {
		return err
	}
	feeds, err := usecase.NewSubscriptionService(store).Remove(c.Index)
	if err != nil {
		return err
	}
	printFeeds(g.Stdout, feeds)
	return nil
}

// FeedsCheckCmd validates the feed list.
type FeedsCheckCmd struct{}

// Run reports the first invalid feed, if any.
func (c *FeedsCheckCmd) Run(g *Globals) error {
	store, err := g.store()
	if err != nil {
		return err
	}
	svc := usecase.NewSubscriptionService(store)
	if err := svc.Check(); err != nil {
		return err
	}
	feeds, err := svc.List()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "ok: %d feeds\n", len(feeds))
	return nil
}

// LoadCmd loads one feed and prints the feed container.
type LoadCmd struct {
	Index   int  `arg:"" optional:"" default:"0" help:"Feed index."`
	NoCache bool `help:"Do not read or write the entry cache."`
}

// Run loads the feed and prints the rendered container HTML.
func (c *LoadCmd) Run(g *Globals) error {
	container, err := g.container(g.Stderr, app.Options{NoCache: c.NoCache})
	if err != nil {
		return err
	}
	defer func() { _ = container.Close() }()

	res := container.Loader.Load(context.Background(), c.Index)
	if res.Err != nil {
		if errors.Is(res.Err, usecase.ErrFeedIndex) {
			return res.Err
		}
		return fmt.Errorf("failed to load %q: %w", res.Source.Name, res.Err)
	}
	html, err := container.Page.FeedHTML()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, html)
	return nil
}

func printFeeds(w io.Writer, feeds []subscription.Source) {
	for i, f := range feeds {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i, f.Name, f.URL)
	}
}
