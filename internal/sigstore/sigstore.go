// Package sigstore persists task input signatures between invocations so
// that tasks whose inputs did not change can be skipped.
package sigstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store maps a task key to the signature of its inputs at the last
// successful run.
type Store interface {
	Get(ctx context.Context, key string) (sig []byte, ok bool, err error)
	Put(ctx context.Context, key string, sig []byte) error
	Close() error
}

// SQLiteStore keeps signatures in a single-table SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Concurrent tasks share one connection; SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS signatures (
		task_key TEXT PRIMARY KEY,
		signature BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var sig []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT signature FROM signatures WHERE task_key = ?`, key).Scan(&sig)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read signature: %w", err)
	}
	return sig, true, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, key string, sig []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signatures (task_key, signature, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(task_key) DO UPDATE SET
			signature = excluded.signature,
			updated_at = excluded.updated_at`, key, sig)
	if err != nil {
		return fmt.Errorf("failed to store signature: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.RWMutex
	sigs map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{sigs: make(map[string][]byte)}
}

// Get implements Store.
func (m *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sig, ok := m.sigs[key]
	return bytes.Clone(sig), ok, nil
}

// Put implements Store.
func (m *MemStore) Put(_ context.Context, key string, sig []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sigs[key] = bytes.Clone(sig)
	return nil
}

// Close implements Store.
func (m *MemStore) Close() error { return nil }
