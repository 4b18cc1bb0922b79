// Package app contains the catalog application service. It orchestrates
// the domain logic over the persistence and probing ports and is the only
// layer that mutates catalog state.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/heinz1110/photocat/internal/domain"
	"github.com/heinz1110/photocat/internal/export"
	"github.com/heinz1110/photocat/internal/ports"
	"github.com/heinz1110/photocat/pkg/log"
)

// conditionGroup is the schema group backing the condition field.
const conditionGroup = "Condition"

// Catalog is the application service for a photocat library.
// All methods are safe for concurrent use; mutations persist the catalog
// through the repository before returning.
type Catalog struct {
	repo   ports.CatalogRepository
	schema ports.CategoryRepository
	prober ports.ImageProber
	logger log.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries []domain.Entry
}

// NewCatalog loads the persisted entry list and returns a ready service.
func NewCatalog(ctx context.Context, repo ports.CatalogRepository, schema ports.CategoryRepository, prober ports.ImageProber, logger log.Logger) (*Catalog, error) {
	entries, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return &Catalog{
		repo:    repo,
		schema:  schema,
		prober:  prober,
		logger:  logger,
		now:     time.Now,
		entries: entries,
	}, nil
}

// Add imports the given image files into the catalog in argument order.
// Paths already present are skipped. Files whose metadata cannot be probed
// are still imported, with dimensions left unknown. Returns the number of
// entries added.
func (c *Catalog) Add(ctx context.Context, paths []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		known[e.FilePath] = true
	}

	added := 0
	for _, path := range paths {
		if known[path] {
			c.logger.Debug("skipping already cataloged file", log.String("path", path))
			continue
		}

		entry := domain.Entry{
			FilePath: path,
			Filename: filepath.Base(path),
			AddedAt:  c.now(),
		}

		info, err := c.prober.Probe(path)
		if err != nil {
			c.logger.Warn("could not probe image", log.String("path", path), log.Err(err))
		} else {
			entry.PixelWidth = info.Width
			entry.PixelHeight = info.Height
			entry.DPI = info.DPI
			if entry.DPI == 0 {
				entry.DPI = domain.DefaultDPI
			}
			entry.PhysicalSize = domain.PhysicalSize(entry.PixelWidth, entry.PixelHeight, entry.DPI)
		}

		c.entries = append(c.entries, entry)
		known[path] = true
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := c.repo.Save(ctx, c.entries); err != nil {
		return 0, fmt.Errorf("save catalog: %w", err)
	}

	c.logger.Info("imported images", log.Int("added", added), log.Int("total", len(c.entries)))
	return added, nil
}

// Remove deletes the named entries from the catalog.
func (c *Catalog) Remove(ctx context.Context, filenames []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	drop, err := c.indexSet(filenames)
	if err != nil {
		return err
	}

	kept := c.entries[:0]
	for i, e := range c.entries {
		if !drop[i] {
			kept = append(kept, e)
		}
	}
	c.entries = kept

	return c.save(ctx)
}

// MoveUp shifts the named entries one position toward the front, keeping
// their relative order. A selection touching the first position is a no-op.
func (c *Catalog) MoveUp(ctx context.Context, filenames []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected, err := c.indexSet(filenames)
	if err != nil {
		return err
	}
	if len(selected) == 0 || selected[0] {
		return nil
	}

	for i := 1; i < len(c.entries); i++ {
		if selected[i] && !selected[i-1] {
			c.entries[i-1], c.entries[i] = c.entries[i], c.entries[i-1]
			selected[i-1], selected[i] = true, false
		}
	}

	return c.save(ctx)
}

// MoveDown shifts the named entries one position toward the back, keeping
// their relative order. A selection touching the last position is a no-op.
func (c *Catalog) MoveDown(ctx context.Context, filenames []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected, err := c.indexSet(filenames)
	if err != nil {
		return err
	}
	if len(selected) == 0 || selected[len(c.entries)-1] {
		return nil
	}

	for i := len(c.entries) - 2; i >= 0; i-- {
		if selected[i] && !selected[i+1] {
			c.entries[i], c.entries[i+1] = c.entries[i+1], c.entries[i]
			selected[i], selected[i+1] = false, true
		}
	}

	return c.save(ctx)
}

// SetText sets the listing text on all named entries.
func (c *Catalog) SetText(ctx context.Context, filenames []string, text string) error {
	return c.update(ctx, filenames, func(e *domain.Entry) error {
		e.Text = text
		return nil
	})
}

// SetComment sets the internal comment on all named entries.
func (c *Catalog) SetComment(ctx context.Context, filenames []string, comment string) error {
	return c.update(ctx, filenames, func(e *domain.Entry) error {
		e.Comment = comment
		return nil
	})
}

// SetCondition sets the condition on all named entries. The value must be
// one of the schema's Condition values, or empty to clear it.
func (c *Catalog) SetCondition(ctx context.Context, filenames []string, condition string) error {
	if condition != "" {
		if err := c.checkSchemaValue(ctx, conditionGroup, condition); err != nil {
			return err
		}
	}
	return c.update(ctx, filenames, func(e *domain.Entry) error {
		e.Condition = condition
		return nil
	})
}

// AssignCategory appends a schema value to the named entries' category
// group. Entries that already carry the value are left untouched.
func (c *Catalog) AssignCategory(ctx context.Context, filenames []string, group, value string) error {
	if err := c.checkSchemaValue(ctx, group, value); err != nil {
		return err
	}
	return c.update(ctx, filenames, func(e *domain.Entry) error {
		if err := e.AssignCategory(group, value); err != nil {
			c.logger.Debug("entry already carries value",
				log.String("file", e.Filename),
				log.String("group", group),
				log.String("value", value))
		}
		return nil
	})
}

// UnassignCategory removes a value from the named entries' category group.
func (c *Catalog) UnassignCategory(ctx context.Context, filenames []string, group, value string) error {
	return c.update(ctx, filenames, func(e *domain.Entry) error {
		e.UnassignCategory(group, value)
		return nil
	})
}

// Entries returns a snapshot of the catalog in order.
func (c *Catalog) Entries() []domain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Select resolves filenames to entries in catalog order.
// Returns ErrEntryNotFound if any name is unknown.
func (c *Catalog) Select(filenames []string) ([]domain.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(filenames)
}

// Preview partitions the selection into export groups without writing
// anything. An empty selection falls back to the whole catalog only for
// ScanAll; for every other mode it yields no groups.
func (c *Catalog) Preview(selection []string, mode domain.ScanMode, interval int) ([]domain.Group, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.selectLocked(selection)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if mode != domain.ScanAll {
			return nil, nil
		}
		entries = make([]domain.Entry, len(c.entries))
		copy(entries, c.entries)
	}

	return export.Partition(entries, mode, interval)
}

// Export partitions the selection, writes one CSV row per group to w, and
// marks the exported entries. Returns the groups that were written.
func (c *Catalog) Export(ctx context.Context, selection []string, mode domain.ScanMode, interval int, w io.Writer) ([]domain.Group, error) {
	groups, err := c.Preview(selection, mode, interval)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}

	if err := export.WriteCSV(w, groups); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	exported := make(map[string]bool)
	for _, g := range groups {
		for _, e := range g.Entries {
			exported[e.Filename] = true
		}
	}
	for i := range c.entries {
		if exported[c.entries[i].Filename] {
			c.entries[i].Exported = true
		}
	}

	if err := c.save(ctx); err != nil {
		return nil, err
	}

	c.logger.Info("exported groups",
		log.Int("groups", len(groups)),
		log.String("mode", mode.String()))
	return groups, nil
}

// Restore clears the exported mark on the named entries.
func (c *Catalog) Restore(ctx context.Context, filenames []string) error {
	return c.update(ctx, filenames, func(e *domain.Entry) error {
		e.Exported = false
		return nil
	})
}

// update applies fn to every named entry and persists the catalog.
func (c *Catalog) update(ctx context.Context, filenames []string, fn func(*domain.Entry) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected, err := c.indexSet(filenames)
	if err != nil {
		return err
	}

	for i := range c.entries {
		if !selected[i] {
			continue
		}
		if err := fn(&c.entries[i]); err != nil {
			return err
		}
	}

	return c.save(ctx)
}

// indexSet maps filenames to positions in the entry list.
// The caller must hold c.mu.
func (c *Catalog) indexSet(filenames []string) (map[int]bool, error) {
	byName := make(map[string]int, len(c.entries))
	for i, e := range c.entries {
		byName[e.Filename] = i
	}

	selected := make(map[int]bool, len(filenames))
	for _, name := range filenames {
		i, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, name)
		}
		selected[i] = true
	}
	return selected, nil
}

// selectLocked resolves filenames to entries in catalog order.
// The caller must hold c.mu.
func (c *Catalog) selectLocked(filenames []string) ([]domain.Entry, error) {
	selected, err := c.indexSet(filenames)
	if err != nil {
		return nil, err
	}

	var out []domain.Entry
	for i, e := range c.entries {
		if selected[i] {
			out = append(out, e)
		}
	}
	return out, nil
}

// checkSchemaValue verifies that value is part of the named schema group.
func (c *Catalog) checkSchemaValue(ctx context.Context, group, value string) error {
	schema, err := c.schema.Load(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	values, ok := schema[group]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, group)
	}
	for _, v := range values {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %q in group %s", domain.ErrUnknownValue, value, group)
}

// save persists the entry list. The caller must hold c.mu.
func (c *Catalog) save(ctx context.Context) error {
	if err := c.repo.Save(ctx, c.entries); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
