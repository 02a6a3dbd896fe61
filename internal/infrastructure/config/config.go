// Package config handles configuration loading and saving.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/feedreader/internal/application/settings"
	"github.com/tesso57/feedreader/internal/domain/subscription"
	"gopkg.in/yaml.v3"
)

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// DefaultPath returns the config location used when none is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "feedreader", "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := settings.Settings{}
	var options []kong.Option
	if exists {
		resolver, err := yamlKongLoader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if resolver != nil {
			options = append(options, kong.Resolvers(resolver))
		}
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return nil, err
	}

	feeds, err := decodeFeeds(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feeds: %w", err)
	}
	if feeds == nil {
		feeds = subscription.DefaultSources()
	}
	cfg.Feeds = normalizeFeeds(feeds)

	cfg.HistoryFile = strings.TrimSpace(cfg.HistoryFile)
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(defaultDataHome(), "feedreader", "history.db")
	}

	store := &Store{Settings: cfg, configPath: configPath}
	if !exists {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}
	return store, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.configPath
}

// decodeFeeds returns nil when the document has no feeds key, so callers can
// tell an absent list apart from an explicitly empty one.
func decodeFeeds(data []byte) ([]subscription.Source, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc struct {
		Feeds []subscription.Source `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Feeds, nil
}

func normalizeFeeds(feeds []subscription.Source) []subscription.Source {
	normalized := make([]subscription.Source, 0, len(feeds))
	for _, feed := range feeds {
		feed = feed.Normalize()
		if feed.Name == "" && feed.URL == "" {
			continue
		}
		normalized = append(normalized, feed)
	}
	return normalized
}

func defaultDataHome() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}

			parts := strings.Split(name, ".")
			if len(parts) < 2 {
				continue
			}
			curr := values
			for i, part := range parts {
				if i == len(parts)-1 {
					if v, ok := curr[part]; ok {
						return v, nil
					}
					break
				}
				next, ok := curr[part].(map[string]any)
				if !ok {
					break
				}
				curr = next
			}
		}
		return nil, nil
	}
	return f, nil
}

// List returns the currently configured feeds.
func (s *Store) List() ([]subscription.Source, error) {
	feeds := make([]subscription.Source, len(s.Settings.Feeds))
	copy(feeds, s.Settings.Feeds)
	return feeds, nil
}

// Add appends a feed and saves the configuration.
func (s *Store) Add(source subscription.Source) error {
	s.Settings.Feeds = append(s.Settings.Feeds, source)
	return s.Save()
}

// Remove deletes a feed by index and saves the configuration.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.Settings.Feeds) {
		return fmt.Errorf("invalid feed index: %d", index)
	}
	s.Settings.Feeds = append(s.Settings.Feeds[:index], s.Settings.Feeds[index+1:]...)
	return s.Save()
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(s.Settings); err != nil {
		return err
	}
	return enc.Close()
}
