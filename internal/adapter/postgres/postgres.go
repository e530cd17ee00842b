// Package postgres implements the document store using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"bodylog/internal/domain"
)

// DB wraps a *sql.DB and implements domain.DocumentStore.
type DB struct {
	sql *sql.DB
}

var _ domain.DocumentStore = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS documents (key TEXT PRIMARY KEY, body BYTEA NOT NULL, updated_at TIMESTAMPTZ NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Get returns the document stored at key, or nil if there is none.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := d.sql.QueryRowContext(ctx, "SELECT body FROM documents WHERE key = $1;", key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}

// Put inserts or replaces the document stored at key in a single statement.
func (d *DB) Put(ctx context.Context, key string, data []byte) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO documents(key, body, updated_at) VALUES($1, $2, $3) ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at;",
		key, data, time.Now().UTC(),
	)
	return err
}
