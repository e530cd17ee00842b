// Package sqlite implements the document store on an embedded SQLite file,
// the on-device counterpart of the postgres adapter.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	// SQLite driver using pure Go implementation
	_ "modernc.org/sqlite"

	"bodylog/internal/domain"
)

const defaultBusyTimeout = 5000

// DB wraps a *sql.DB and implements domain.DocumentStore.
type DB struct {
	sql *sql.DB
}

var _ domain.DocumentStore = (*DB)(nil)

// Open opens (creating if needed) the SQLite database at path and creates
// the documents table.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	s, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// dsn builds a file: URI for path. The path is escaped so that '?' and '#'
// in a directory name are not read as the query or fragment.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", defaultBusyTimeout))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(FULL)")
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?" + q.Encode()
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Get returns the document stored at key, or nil if there is none.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := d.sql.QueryRowContext(ctx, "SELECT body FROM documents WHERE key = ?;", key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}

// Put inserts or replaces the document stored at key.
func (d *DB) Put(ctx context.Context, key string, data []byte) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO documents(key, body, updated_at) VALUES(?, ?, ?) ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at;",
		key, data, time.Now().UnixMilli(),
	)
	return err
}
