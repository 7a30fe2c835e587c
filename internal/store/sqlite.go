package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/athuyarain/burme-mark/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteKV implements KV using a single SQLite table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the key-value database at dbPath.
func NewSQLite(dbPath string) (KV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteKV{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteKV) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteKV) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get returns the value stored under key, or (nil, nil) when absent.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key)

	var value []byte
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan kv row: %w", err)
	}
	return value, nil
}

// Set overwrites the value stored under key. SQLITE_BUSY conflicts are
// retried a few times before giving up.
func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		_, err = s.db.ExecContext(ctx, query, key, value, time.Now().Unix())
		if err == nil {
			return nil
		}
		if !shared.IsSQLiteConflictError(err) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("set %q: %w", key, err)
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
