// Package file persists history as a single JSON array on disk, the default
// backend. Reads and writes go through one mutex so the capacity cap survives
// concurrent appends.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"qrsecure/internal/history"
)

type Store struct {
	path     string
	capacity int
	mu       sync.Mutex
}

func New(path string, capacity int) *Store {
	if capacity <= 0 {
		capacity = history.DefaultCapacity
	}
	return &Store{path: path, capacity: capacity}
}

func (s *Store) Capacity() int { return s.capacity }

func (s *Store) Append(_ context.Context, e history.Entry) error {
	const op = "history.file.Append"

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	entries = append([]history.Entry{e}, entries...)
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]history.Entry, error) {
	const op = "history.file.List"

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// load reads the current file; a missing file is an empty history.
func (s *Store) load() ([]history.Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []history.Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
