// Package duckdb provides a DuckDB-backed key-value store for dashboard
// state such as the watchlist.
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/duckdb/migrate"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store manages the DuckDB database connection.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	QueryTimeout time.Duration
}

// NewStore opens or creates a DuckDB database.
// If dbPath is empty, an in-memory database is used.
// An optional queryTimeout can be passed; it defaults to 5s.
func NewStore(dbPath string, queryTimeout ...time.Duration) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate.NewRunner(db).Run(); err != nil {
		db.Close()
		return nil, err
	}

	qt := 5 * time.Second
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	return &Store{
		db:           db,
		dbPath:       dbPath,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DBPath returns the configured DuckDB path. Empty means in-memory DB.
func (s *Store) DBPath() string {
	return s.dbPath
}

// SchemaStatus reports the applied migration version and how many embedded
// migrations are still pending.
func (s *Store) SchemaStatus() (version, pending int, err error) {
	return migrate.NewRunner(s.db).Status()
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("duckdb: get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set writes value under key, replacing any previous value in one statement.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, current_timestamp)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("duckdb: set %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("duckdb: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
