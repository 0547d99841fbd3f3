// Package storage provides the widget's persistent key-value store.
// Values are JSON-serialized; no schema is enforced beyond the key.
// Serialization failures are logged and swallowed so a broken value never
// surfaces as a user-visible error: writers lose the write, readers keep
// the default they supplied.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/vivekraina7/Windows-Error/pkg/logger"
)

// Store is a SQLite-backed key-value store.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open creates or opens the store at path.
func Open(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping storage: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS page_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Put serializes value under key. Failures are logged, not returned.
func (s *Store) Put(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error("storage serialization failed", zap.String("key", key), zap.Error(err))
		return
	}

	query := `
		INSERT INTO page_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, string(raw), time.Now().Unix()); err != nil {
		s.log.Error("storage write failed", zap.String("key", key), zap.Error(err))
	}
}

// Get deserializes the value under key into out. When the key is absent or
// the stored value cannot be decoded, out is left untouched (the caller's
// default survives) and Get returns false.
func (s *Store) Get(ctx context.Context, key string, out any) bool {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM page_storage WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.log.Error("storage read failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Error("storage deserialization failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM page_storage WHERE key = ?`, key); err != nil {
		s.log.Error("storage delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Ping verifies storage connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
