package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path.
// ":memory:" gives a throwaway database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one connection, so ":memory:" is a single database
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS preferences (
	  key TEXT PRIMARY KEY,
	  value TEXT NOT NULL,
	  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schemaSQL)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	var value []string
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, fmt.Errorf("failed to decode preference %s: %w", key, err)
	}
	return clone(value), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []string) error {
	raw, err := json.Marshal(clone(value))
	if err != nil {
		return err
	}

	upsertSQL := `
	INSERT INTO preferences (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	  value = excluded.value,
	  updated_at = CURRENT_TIMESTAMP;
	`
	if _, err := s.db.ExecContext(ctx, upsertSQL, key, string(raw)); err != nil {
		return fmt.Errorf("failed to upsert preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
