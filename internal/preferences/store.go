// Package preferences is a flat key-value store for user preferences.
// Values are ordered lists of strings, which is all the favorites list needs.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/takeaway/internal/models"
)

var ErrUnknownBackend = errors.New("unknown preference store backend")

// Store reads and writes single preference entries. ok is false when the key
// has never been set.
type Store interface {
	Get(ctx context.Context, key string) (value []string, ok bool, err error)
	Set(ctx context.Context, key string, value []string) error
}

// ClosableStore is a Store holding a resource that must be released.
type ClosableStore interface {
	Store
	Close() error
}

// Open builds the backend named in cfg.
func Open(ctx context.Context, cfg models.StoreConfig) (ClosableStore, error) {
	switch cfg.Backend {
	case models.StoreBackendMemory:
		return NewMemoryStore(), nil
	case models.StoreBackendFile, "":
		return NewFileStore(cfg.Path), nil
	case models.StoreBackendSQLite:
		return OpenSQLiteStore(cfg.Path)
	case models.StoreBackendPostgres:
		return OpenPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func clone(value []string) []string {
	if value == nil {
		return []string{}
	}
	return append([]string(nil), value...)
}
