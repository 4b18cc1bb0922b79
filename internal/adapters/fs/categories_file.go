package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

const categoriesFileName = "categories.json"

// DefaultCategories is the category schema seeded for new libraries.
// The groups and values cover common photographic paper antiquities.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"Type": {
			"Postcard", "Cabinet Card", "CDV", "Albumen Print",
			"Daguerreotype", "Tintype", "Ambrotype", "Stereoview",
		},
		"Era": {
			"Pre-1850", "1850-1900", "1900-1920", "1920-1950",
			"1950-1980", "1980-2000", "Post-2000",
		},
		"Condition": {
			"Mint", "Near Mint", "Excellent", "Very Good", "Good",
			"Fair", "Poor", "Fragment",
		},
		"Theme": {
			"Portrait", "Landscape", "Architecture", "Street Scene",
			"Transportation", "Industry", "Military", "Fashion",
			"Family", "Event", "Travel",
		},
	}
}

// CategoryFileRepository implements ports.CategoryRepository using a JSON file.
type CategoryFileRepository struct {
	dir string
}

// NewCategoryFileRepository creates a repository storing the schema in dir.
func NewCategoryFileRepository(dir string) *CategoryFileRepository {
	return &CategoryFileRepository{dir: dir}
}

// Load retrieves the saved category schema from disk.
// Returns the default schema if no file exists yet.
func (r *CategoryFileRepository) Load(ctx context.Context) (map[string][]string, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCategories(), nil
		}
		return nil, err
	}

	var schema map[string][]string
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// Save persists the schema atomically.
func (r *CategoryFileRepository) Save(ctx context.Context, schema map[string][]string) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the categories file.
func (r *CategoryFileRepository) Path() string {
	return filepath.Join(r.dir, categoriesFileName)
}
