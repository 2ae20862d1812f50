package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Vasu1712/scenecast/internal/models"
)

// FileName is the library document inside the data directory.
const FileName = "library.json"

// LibraryStore persists the library as an indented JSON document.
type LibraryStore struct {
	path string
}

// NewLibraryStore creates dataDir if needed and stores the library in it.
func NewLibraryStore(dataDir string) (*LibraryStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &LibraryStore{path: filepath.Join(dataDir, FileName)}, nil
}

// Path is the location of the library document.
func (s *LibraryStore) Path() string { return s.path }

// Load reads the library. A missing file yields (nil, nil); an unreadable or
// corrupt one is treated the same way so the server can start fresh.
func (s *LibraryStore) Load(ctx context.Context) (*models.Library, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var lib models.Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, nil
	}
	return &lib, nil
}

// Save writes lib to a temporary file and renames it into place.
func (s *LibraryStore) Save(ctx context.Context, lib *models.Library) error {
	raw, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
