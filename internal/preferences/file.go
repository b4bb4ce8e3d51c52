package preferences

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps every entry in one YAML document:
//
//	favourite_restaurants:
//	  - Tanoshii Sushi
//	  - Royal Thai
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) read() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	entries := map[string][]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file %s: %w", s.path, err)
	}
	if entries == nil {
		entries = map[string][]string{}
	}
	return entries, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return clone(value), true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries[key] = clone(value)

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	// replace atomically
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
