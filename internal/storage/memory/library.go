package memory

import (
	"context"
	"sync"

	"github.com/Vasu1712/scenecast/internal/models"
)

// LibraryStore keeps the library in process memory. Nothing survives a restart.
type LibraryStore struct {
	mu    sync.RWMutex
	lib   *models.Library
	saves int
}

// NewLibraryStore creates a store, optionally seeded with a library.
func NewLibraryStore(seed *models.Library) *LibraryStore {
	s := &LibraryStore{}
	if seed != nil {
		s.lib = seed.Clone()
	}
	return s
}

// Load returns a copy of the stored library, or nil if nothing was saved yet.
func (s *LibraryStore) Load(ctx context.Context) (*models.Library, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lib == nil {
		return nil, nil
	}
	return s.lib.Clone(), nil
}

// Save replaces the stored library with a copy of lib.
func (s *LibraryStore) Save(ctx context.Context, lib *models.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lib = lib.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *LibraryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
