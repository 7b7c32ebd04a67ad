package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/grand-plaza/migrations"
)

const timeFormat = time.RFC3339Nano

// SQLite is the durable Store. Every key is one row of the kv table.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the SQLite file at path and applies
// the embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("kv.OpenSQLite: storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("kv.OpenSQLite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kv.OpenSQLite: ping: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kv.OpenSQLite: goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kv.OpenSQLite: migrate: %w", err)
	}

	return NewSQLite(db), nil
}

// NewSQLite wraps an already migrated database. Tests use it to inject a
// sqlmock connection.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT value FROM kv WHERE key = ?`

	var v []byte
	err := s.db.QueryRowContext(ctx, q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv.SQLite.Get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, q, key, value, s.now().UTC().Format(timeFormat)); err != nil {
		return fmt.Errorf("kv.SQLite.Set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("kv.SQLite.Delete %q: %w", key, err)
	}
	return nil
}

var _ Store = (*SQLite)(nil)
