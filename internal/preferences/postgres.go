package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the slice of *pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db    querier
	close func()
}

func OpenPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewPostgresStore(pool)
	store.close = pool.Close
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS preferences (
            key TEXT PRIMARY KEY,
            value TEXT[] NOT NULL DEFAULT '{}',
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	var value []string
	err := s.db.QueryRow(ctx, `SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return clone(value), true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []string) error {
	query := `
        INSERT INTO preferences (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()
    `
	if _, err := s.db.Exec(ctx, query, key, clone(value)); err != nil {
		return fmt.Errorf("failed to upsert preference %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
