package main

import (
	"io"
	"strings"

	"github.com/tesso57/feedreader/internal/app"
	"github.com/tesso57/feedreader/internal/infrastructure/config"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Path to the config file." type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error). Overrides the config file."`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

func (g *Globals) store() (*config.Store, error) {
	return config.Load(g.Config)
}

func (g *Globals) container(logTo io.Writer, opts app.Options) (*app.Container, error) {
	store, err := g.store()
	if err != nil {
		return nil, err
	}
	level := strings.TrimSpace(g.LogLevel)
	if level == "" {
		level = store.Settings.LogLevel
	}
	logger, err := app.NewLogger(logTo, level)
	if err != nil {
		return nil, err
	}
	return app.New(store, logger, opts)
}
