// Package settings defines application-level configuration data.
package settings

import (
	"time"

	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up         string `yaml:"up" kong:"help='Up key',default='k'"`
	Down       string `yaml:"down" kong:"help='Down key',default='j'"`
	Open       string `yaml:"open" kong:"help='Load selected feed key',default='enter'"`
	ToggleMenu string `yaml:"toggle_menu" kong:"help='Show/hide feed menu key',default='m'"`
	Refresh    string `yaml:"refresh" kong:"help='Reload current feed key',default='r'"`
	Quit       string `yaml:"quit" kong:"help='Quit key',default='q'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	FeedName string `yaml:"feed_name" kong:"help='Feed name color',default='244'"`
	Accent   string `yaml:"accent" kong:"help='Accent color',default='205'"`
}

// Settings represents the application configuration.
type Settings struct {
	Feeds               []subscription.Source `yaml:"feeds" kong:"-"`
	Listen              string                `yaml:"listen" kong:"help='HTTP listen address',default='127.0.0.1:8080'"`
	HistoryFile         string                `yaml:"history_file" kong:"help='Entry cache database path'"`
	FetchTimeoutSeconds int                   `yaml:"fetch_timeout_seconds" kong:"help='Per-feed fetch timeout in seconds',default='10'"`
	MaxEntries          int                   `yaml:"max_entries" kong:"help='Maximum entries rendered per feed (0 = all)',default='0'"`
	LogLevel            string                `yaml:"log_level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	KeyMap              KeyMapConfig          `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme               ThemeConfig           `yaml:"theme" kong:"embed,prefix='theme.'"`
}

// FetchTimeout returns the per-feed fetch timeout, zero meaning none.
func (s Settings) FetchTimeout() time.Duration {
	if s.FetchTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}
