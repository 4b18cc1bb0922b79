package ports

import (
	"context"

	"github.com/heinz1110/photocat/internal/domain"
)

// CatalogRepository handles persistence of the catalog entry list.
// Implementations persist entries to disk (or other storage) atomically.
type CatalogRepository interface {
	// Load retrieves the saved entries in catalog order.
	// Returns an empty list and nil error if no catalog exists yet.
	// Returns an error only for actual read failures.
	Load(ctx context.Context) ([]domain.Entry, error)

	// Save persists the entry list atomically.
	// The implementation should use atomic writes (write to temp file,
	// then rename) to prevent corruption on crash.
	Save(ctx context.Context, entries []domain.Entry) error
}

// CategoryRepository handles persistence of the category schema: the
// mapping from category-group name to its allowed values.
type CategoryRepository interface {
	// Load retrieves the saved schema, or the default schema if none
	// has been saved yet.
	Load(ctx context.Context) (map[string][]string, error)

	// Save persists the schema atomically.
	Save(ctx context.Context, schema map[string][]string) error
}
