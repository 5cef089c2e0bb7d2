package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Collection keys.
const (
	KeyTasks = "tasks"
	KeyLinks = "links"
	KeyTheme = "theme"
)

// KV is a synchronous key-value store over a local SQLite database.
// Values are stored as JSON documents, one row per collection.
//
// Read and write failures never reach callers: a failed or corrupt
// read leaves the caller's default in place, and a failed write
// leaves the in-memory state authoritative. Both are logged.
type KV struct {
	db *sqlx.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func Open(dbPath string) (*KV, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &KV{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *KV) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *KV) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Get reads the JSON value stored at key into dest. It returns false
// when the key is absent or the stored value cannot be decoded; dest
// is left untouched in both cases, so a caller's pre-filled default
// survives a missing or corrupt record.
func (s *KV) Get(key string, dest interface{}) bool {
	var raw string
	err := s.db.Get(&raw, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		log.Printf("storage: reading %q: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("storage: corrupt value at %q, keeping defaults: %v", key, err)
		return false
	}
	return true
}

// Set serializes value as JSON and stores it at key, replacing any
// previous value. Failures are logged, never returned.
func (s *KV) Set(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("storage: encoding %q: %v", key, err)
		return
	}
	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, string(raw),
	); err != nil {
		log.Printf("storage: writing %q: %v", key, err)
	}
}

// Remove deletes the value stored at key, if any.
func (s *KV) Remove(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		log.Printf("storage: removing %q: %v", key, err)
	}
}

// SetRaw stores an unvalidated payload at key. Tests use it to stage
// corrupt records; application code should use Set.
func (s *KV) SetRaw(key, raw string) {
	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, raw,
	); err != nil {
		log.Printf("storage: writing %q: %v", key, err)
	}
}
