// Package app wires configuration, storage and services into a running reader.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tesso57/feedreader/internal/application/settings"
	"github.com/tesso57/feedreader/internal/application/usecase"
	"github.com/tesso57/feedreader/internal/infrastructure/config"
	"github.com/tesso57/feedreader/internal/infrastructure/feed"
	"github.com/tesso57/feedreader/internal/infrastructure/history"
	"github.com/tesso57/feedreader/internal/presentation/page"
)

// Options adjusts how the container is built.
type Options struct {
	// Fetcher overrides the network fetcher.
	Fetcher usecase.FeedFetcher
	// NoCache disables the SQLite entry cache.
	NoCache bool
}

// Container holds the wired services for one process.
type Container struct {
	Store         *config.Store
	Settings      settings.Settings
	History       *history.Manager
	Subscriptions usecase.SubscriptionService
	Reading       usecase.ReadingService
	Page          *page.Page
	Loader        *usecase.Loader
	Logger        *slog.Logger
}

// New builds a container from a loaded config store.
func New(store *config.Store, logger *slog.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := store.Settings

	c := &Container{
		Store:         store,
		Settings:      cfg,
		Subscriptions: usecase.NewSubscriptionService(store),
		Logger:        logger,
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = feed.Fetcher{Timeout: cfg.FetchTimeout()}
	}

	var cache usecase.EntryCache
	if !opts.NoCache && cfg.HistoryFile != "" {
		h, err := history.Open(cfg.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open entry cache: %w", err)
		}
		c.History = h
		cache = h
	}
	c.Reading = usecase.NewReadingService(fetcher, cache, logger)

	feeds, err := c.Subscriptions.List()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Page = page.New(feeds)
	c.Loader = usecase.NewLoader(c.Subscriptions, c.Reading, c.Page, cfg.MaxEntries, logger)
	c.Page.Bind(c.Loader)
	return c, nil
}

// RefreshMenu re-reads the subscriptions into the page's feed list.
func (c *Container) RefreshMenu() error {
	feeds, err := c.Subscriptions.List()
	if err != nil {
		return err
	}
	c.Page.SetSources(feeds)
	return nil
}

// Close waits for outstanding loads and releases storage.
func (c *Container) Close() error {
	if c.Loader != nil {
		c.Loader.Wait()
	}
	if c.History != nil {
		return c.History.Close()
	}
	return nil
}

// NewLogger returns a text logger at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
