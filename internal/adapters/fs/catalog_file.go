// Package fs provides file-system-backed implementations of the catalog
// persistence ports using JSON files under the library directory.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/heinz1110/photocat/internal/domain"
)

const catalogFileName = "catalog.json"

// CatalogFileRepository implements ports.CatalogRepository using a JSON file.
type CatalogFileRepository struct {
	dir string
}

// NewCatalogFileRepository creates a repository storing the catalog in dir.
func NewCatalogFileRepository(dir string) *CatalogFileRepository {
	return &CatalogFileRepository{dir: dir}
}

// Load retrieves the saved entries from disk.
// Returns an empty list and nil error if no catalog file exists.
func (r *CatalogFileRepository) Load(ctx context.Context) ([]domain.Entry, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save persists the entry list atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *CatalogFileRepository) Save(ctx context.Context, entries []domain.Entry) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the catalog file.
func (r *CatalogFileRepository) Path() string {
	return filepath.Join(r.dir, catalogFileName)
}
