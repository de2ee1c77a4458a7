// Package store provides a content-addressed blob store for byte buffers,
// keyed by the runtime's polynomial content hash. It backs the bridge's
// put/get operations with a SQLite database.
package store

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrBlobNotFound indicates the requested content key does not exist.
var ErrBlobNotFound = errors.New("blob not found")

// Store is a SQLite-backed blob store. Keys are the hex form of the
// runtime content hash of the stored bytes, so a blob's key is derivable
// from its content and puts are idempotent.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the store at the given path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key  TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blobs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// KeyFor returns the store key for the given content: the 8-byte
// polynomial hash (h = 7; h = h*31 + b) in big-endian hex.
func KeyFor(data []byte) string {
	h := uint64(7)
	for _, b := range data {
		h = h*31 + uint64(b)
	}
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(h)
		h >>= 8
	}
	return hex.EncodeToString(buf[:])
}

// Put stores data under its content key and returns the key. Storing the
// same content twice is a no-op.
func (s *Store) Put(data []byte) (string, error) {
	key := KeyFor(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO blobs (key, data) VALUES (?, ?) ON CONFLICT(key) DO NOTHING",
		key, data)
	if err != nil {
		return "", fmt.Errorf("storing blob %s: %w", key, err)
	}
	return key, nil
}

// Get returns the blob stored under key, or ErrBlobNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM blobs WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading blob %s: %w", key, err)
	}
	return data, nil
}

// Has reports whether a blob exists under key.
func (s *Store) Has(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var one int
	err := s.db.QueryRow("SELECT 1 FROM blobs WHERE key = ?", key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking blob %s: %w", key, err)
	}
	return true, nil
}
