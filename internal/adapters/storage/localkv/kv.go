// Package localkv implements the ephemeral backend over a device-local
// sqlite key-value table. Values are JSON strings; anything unreadable
// degrades to an empty collection rather than an error, matching the
// contract for malformed local state.
package localkv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// KV is a string key-value store scoped to the device.
type KV struct {
	db *sql.DB
}

// OpenKV opens (and initializes) the store at path. Use ":memory:" for an
// in-process store in tests.
func OpenKV(path string) (*KV, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing local store: %w", err)
	}
	return &KV{db: db}, nil
}

func (s *KV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("localkv get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KV) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("localkv set %q: %w", key, err)
	}
	return nil
}

func (s *KV) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("localkv delete %q: %w", key, err)
	}
	return nil
}

func (s *KV) Close() error {
	return s.db.Close()
}
