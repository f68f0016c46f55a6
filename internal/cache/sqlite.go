package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	fingerprint TEXT PRIMARY KEY,
	payload     BLOB NOT NULL,
	stored_at   INTEGER NOT NULL
);`

// Store is a SQLite-backed response cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the database (and its parent directory) if needed and
// initializes the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Get returns the payload for fingerprint while it is younger than ttl.
// A stale or missing entry reports ok=false with no error.
func (s *Store) Get(fingerprint string, ttl time.Duration) ([]byte, bool, error) {
	payload, storedAt, ok, err := s.lookup(fingerprint)
	if err != nil || !ok {
		return nil, false, err
	}
	if s.now().Sub(storedAt) > ttl {
		return nil, false, nil
	}
	return payload, true, nil
}

// GetStale returns the payload regardless of age.
func (s *Store) GetStale(fingerprint string) ([]byte, bool, error) {
	payload, _, ok, err := s.lookup(fingerprint)
	return payload, ok, err
}

// Put stores payload under fingerprint, replacing any previous entry.
func (s *Store) Put(fingerprint string, payload []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO responses (fingerprint, payload, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			payload   = excluded.payload,
			stored_at = excluded.stored_at`,
		fingerprint, payload, s.now().Unix())
	if err != nil {
		return fmt.Errorf("caching response %s: %w", fingerprint, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) lookup(fingerprint string) ([]byte, time.Time, bool, error) {
	var payload []byte
	var storedAt int64
	err := s.db.QueryRow(
		`SELECT payload, stored_at FROM responses WHERE fingerprint = ?`,
		fingerprint).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("reading cache entry %s: %w", fingerprint, err)
	}
	return payload, time.Unix(storedAt, 0), true, nil
}
