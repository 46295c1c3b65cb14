// Package kvstore persists origin-scoped string preferences, the terminal
// counterpart of a browser's localStorage.
package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tinytelemetry/gatepass/internal/kvstore/migrate"
	"github.com/tinytelemetry/gatepass/internal/model"
)

// Supported backends.
const (
	BackendDuckDB = "duckdb"
	BackendSQLite = "sqlite"
)

// Store is a preference store on top of database/sql. All reads and writes
// are scoped to one origin.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	backend      string
	dbPath       string
	origin       string
	QueryTimeout time.Duration
}

var _ model.PreferenceStore = (*Store)(nil)

// Open opens or creates a preference database for backend.
// If dbPath is empty, an in-memory database is used.
// An optional queryTimeout can be passed; it defaults to 30s.
func Open(backend, dbPath, origin string, queryTimeout ...time.Duration) (*Store, error) {
	if origin == "" {
		origin = model.DefaultOrigin
	}

	db, err := openDB(backend, dbPath)
	if err != nil {
		return nil, err
	}

	qt := 30 * time.Second
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), qt)
	defer cancel()
	if _, err := migrate.Up(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("kvstore: %w", err)
	}

	return &Store{
		db:           db,
		backend:      backend,
		dbPath:       dbPath,
		origin:       origin,
		QueryTimeout: qt,
	}, nil
}

func openDB(backend, dbPath string) (*sql.DB, error) {
	if dbPath != "" {
		// Ensure parent directory exists
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("kvstore: mkdir: %w", err)
		}
	}

	switch backend {
	case BackendDuckDB, "":
		db, err := sql.Open("duckdb", dbPath)
		if err != nil {
			return nil, fmt.Errorf("kvstore: open duckdb: %w", err)
		}
		return db, nil
	case BackendSQLite:
		dsn := dbPath
		if dsn == "" {
			dsn = ":memory:"
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("kvstore: open sqlite: %w", err)
		}
		// SQLite allows one writer; a single connection also keeps an
		// in-memory database alive for the life of the store.
		db.SetMaxOpenConns(1)
		return db, nil
	}
	return nil, fmt.Errorf("kvstore: unknown backend %q", backend)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Origin returns the origin all keys are scoped to.
func (s *Store) Origin() string { return s.origin }

// Backend returns the driver in use.
func (s *Store) Backend() string { return s.backend }

// Path returns the database file, or "" for in-memory stores.
func (s *Store) Path() string { return s.dbPath }

// Get returns the value stored under key. ok is false when the key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE origin = ? AND name = ?",
		s.origin, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore: get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences (origin, name, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (origin, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.origin, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("kvstore: set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM preferences WHERE origin = ? AND name = ?",
		s.origin, key,
	); err != nil {
		return fmt.Errorf("kvstore: remove %q: %w", key, err)
	}
	return nil
}

// Entries lists every key for the store's origin, ordered by key.
func (s *Store) Entries() ([]model.KeyValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, value, updated_at FROM preferences WHERE origin = ? ORDER BY name",
		s.origin,
	)
	if err != nil {
		return nil, fmt.Errorf("kvstore: list: %w", err)
	}
	defer rows.Close()

	var out []model.KeyValue
	for rows.Next() {
		var kv model.KeyValue
		var updated any
		if err := rows.Scan(&kv.Key, &kv.Value, &updated); err != nil {
			return nil, fmt.Errorf("kvstore: scan: %w", err)
		}
		kv.UpdatedAt = parseTimestamp(updated)
		out = append(out, kv)
	}
	return out, rows.Err()
}
