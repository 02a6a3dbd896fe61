// Package history caches fetched feed entries in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tesso57/feedreader/internal/domain/reading"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	feed_url    TEXT NOT NULL,
	key         TEXT NOT NULL,
	guid        TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	link        TEXT NOT NULL DEFAULT '',
	author      TEXT NOT NULL DEFAULT '',
	published   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL DEFAULT '',
	date_unix   INTEGER NOT NULL DEFAULT 0,
	feed_title  TEXT NOT NULL DEFAULT '',
	saved_at    INTEGER NOT NULL,
	PRIMARY KEY (feed_url, key)
);
CREATE INDEX IF NOT EXISTS entries_feed_date ON entries (feed_url, date_unix DESC);
`

// Manager reads and writes cached entries.
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates if needed) the cache database at path.
func Open(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writers; one connection keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Manager{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (m *Manager) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Upsert stores items, replacing earlier copies with the same feed and key.
// Cached entries of the same feeds that are missing from items are removed,
// so each feed's cache mirrors its latest fetch. Items without a GUID or link
// are skipped.
func (m *Manager) Upsert(ctx context.Context, items []reading.Item) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO entries (feed_url, key, guid, title, link, author, published, description, content, date_unix, feed_title, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (feed_url, key) DO UPDATE SET
	guid = excluded.guid,
	title = excluded.title,
	link = excluded.link,
	author = excluded.author,
	published = excluded.published,
	description = excluded.description,
	content = excluded.content,
	date_unix = excluded.date_unix,
	feed_title = excluded.feed_title,
	saved_at = excluded.saved_at`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	savedAt := m.now().Unix()
	keysByFeed := make(map[string][]any)
	var feedOrder []string
	for _, item := range items {
		key := item.Key()
		if key == "" {
			continue
		}
		if _, seen := keysByFeed[item.FeedURL]; !seen {
			feedOrder = append(feedOrder, item.FeedURL)
		}
		keysByFeed[item.FeedURL] = append(keysByFeed[item.FeedURL], key)
		var dateUnix int64
		if !item.Date.IsZero() {
			dateUnix = item.Date.Unix()
		}
		if _, err := stmt.ExecContext(ctx,
			item.FeedURL, key, item.GUID, item.Title, item.Link, item.Author, item.Published,
			item.Description, item.Content, dateUnix, item.FeedTitle, savedAt,
		); err != nil {
			return fmt.Errorf("failed to store entry %q: %w", key, err)
		}
	}

	for _, feedURL := range feedOrder {
		if err := pruneFeed(ctx, tx, feedURL, keysByFeed[feedURL]); err != nil {
			return fmt.Errorf("failed to prune entries of %q: %w", feedURL, err)
		}
	}
	return tx.Commit()
}

func pruneFeed(ctx context.Context, tx *sql.Tx, feedURL string, keys []any) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := append([]any{feedURL}, keys...)
	_, err := tx.ExecContext(ctx,
		`DELETE FROM entries WHERE feed_url = ? AND key NOT IN (`+placeholders+`)`, args...)
	return err
}

// LoadByFeed returns cached items for a feed, newest first. A limit of zero
// or less returns everything.
func (m *Manager) LoadByFeed(ctx context.Context, feedURL string, limit int) ([]reading.Item, error) {
	query := `
SELECT guid, title, link, author, published, description, content, date_unix, feed_title, feed_url
FROM entries WHERE feed_url = ?
ORDER BY date_unix DESC, saved_at DESC, rowid ASC`
	args := []any{feedURL}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []reading.Item
	for rows.Next() {
		var item reading.Item
		var dateUnix int64
		if err := rows.Scan(&item.GUID, &item.Title, &item.Link, &item.Author, &item.Published,
			&item.Description, &item.Content, &dateUnix, &item.FeedTitle, &item.FeedURL); err != nil {
			return nil, err
		}
		if dateUnix != 0 {
			item.Date = time.Unix(dateUnix, 0).UTC()
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
