// Package photocat catalogs scanned photographic paper and partitions the
// catalog into export groups for listing.
//
// Example usage:
//
//	lib, err := photocat.Open(ctx, photocat.Config{LibraryDir: dir})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close(ctx)
//	if _, err := lib.Add(ctx, []string{"scan-001.jpg"}); err != nil {
//	    log.Fatal(err)
//	}
//	groups, err := lib.Export(ctx, nil, photocat.ScanAll, 1, os.Stdout)
package photocat

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/heinz1110/photocat/internal/adapters/exif"
	"github.com/heinz1110/photocat/internal/adapters/fs"
	"github.com/heinz1110/photocat/internal/app"
	"github.com/heinz1110/photocat/internal/domain"
)

// Entry is a single cataloged image.
type Entry = domain.Entry

// Group is one export unit of consecutive or alternating entries.
type Group = domain.Group

// ScanMode selects how the catalog is partitioned into export groups.
type ScanMode = domain.ScanMode

// Scan modes accepted by Preview and Export.
const (
	ScanSingle    = domain.ScanSingle
	ScanPair      = domain.ScanPair
	ScanAll       = domain.ScanAll
	ScanGroupOfX  = domain.ScanGroupOfX
	ScanAlternate = domain.ScanAlternate
)

// ParseScanMode maps a mode name to its ScanMode.
func ParseScanMode(s string) (ScanMode, error) {
	return domain.ParseScanMode(s)
}

// Config holds the configuration for a photocat library.
type Config struct {
	// LibraryDir is the directory holding catalog.json and categories.json.
	// Required.
	LibraryDir string

	// InboxDir is the directory plugins may watch for new scans. Optional.
	InboxDir string

	// Extensions lists the image file extensions plugins consider,
	// lowercase without a leading dot. Optional.
	Extensions []string

	// DebounceDelay is how long plugins wait for a file to settle before
	// importing it. Optional.
	DebounceDelay time.Duration
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.LibraryDir == "" {
		return fmt.Errorf("%w: library directory is required", domain.ErrInvalidConfig)
	}
	return nil
}

// Library is an open photocat library. All methods are safe for
// concurrent use.
type Library struct {
	cfg     Config
	catalog *app.Catalog
	opts    options

	cancel  context.CancelFunc
	started []Plugin
}

// Open loads the library in cfg.LibraryDir and starts any registered
// plugins. The directory is created on first save if it does not exist.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.prober == nil {
		o.prober = exif.NewProber()
	}

	catalog, err := app.NewCatalog(ctx,
		fs.NewCatalogFileRepository(cfg.LibraryDir),
		fs.NewCategoryFileRepository(cfg.LibraryDir),
		o.prober,
		o.logger,
	)
	if err != nil {
		return nil, err
	}

	lib := &Library{cfg: cfg, catalog: catalog, opts: o}
	if err := lib.startPlugins(ctx); err != nil {
		return nil, err
	}
	return lib, nil
}

// startPlugins initializes the registered plugins in order. On failure the
// already started ones are shut down again.
func (l *Library) startPlugins(ctx context.Context) error {
	if len(l.opts.plugins) == 0 {
		return nil
	}

	pluginCtx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	pcfg := PluginConfig{
		LibraryDir:    l.cfg.LibraryDir,
		InboxDir:      l.cfg.InboxDir,
		Extensions:    l.cfg.Extensions,
		DebounceDelay: l.cfg.DebounceDelay,
		Importer:      l.catalog,
		Logger:        l.opts.logger,
	}
	for _, p := range l.opts.plugins {
		if err := p.Initialize(pluginCtx, pcfg); err != nil {
			l.Close(ctx)
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		l.started = append(l.started, p)
	}
	return nil
}

// Close stops the registered plugins in reverse order. The catalog itself
// holds no open resources, so Close only affects plugins.
func (l *Library) Close(ctx context.Context) error {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	var firstErr error
	for i := len(l.started) - 1; i >= 0; i-- {
		p := l.started[i]
		if err := p.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shutdown plugin %s: %w", p.Name(), err)
		}
	}
	l.started = nil
	return firstErr
}

// Add imports the given image files into the catalog in argument order.
// Paths already present are skipped. Returns the number of entries added.
func (l *Library) Add(ctx context.Context, paths []string) (int, error) {
	return l.catalog.Add(ctx, paths)
}

// Remove deletes the named entries from the catalog.
func (l *Library) Remove(ctx context.Context, filenames []string) error {
	return l.catalog.Remove(ctx, filenames)
}

// MoveUp shifts the named entries one position toward the front.
func (l *Library) MoveUp(ctx context.Context, filenames []string) error {
	return l.catalog.MoveUp(ctx, filenames)
}

// MoveDown shifts the named entries one position toward the back.
func (l *Library) MoveDown(ctx context.Context, filenames []string) error {
	return l.catalog.MoveDown(ctx, filenames)
}

// SetText sets the listing text on the named entries.
func (l *Library) SetText(ctx context.Context, filenames []string, text string) error {
	return l.catalog.SetText(ctx, filenames, text)
}

// SetComment sets the internal comment on the named entries.
func (l *Library) SetComment(ctx context.Context, filenames []string, comment string) error {
	return l.catalog.SetComment(ctx, filenames, comment)
}

// SetCondition sets the condition on the named entries. The value must be
// one of the schema's Condition values, or empty to clear it.
func (l *Library) SetCondition(ctx context.Context, filenames []string, condition string) error {
	return l.catalog.SetCondition(ctx, filenames, condition)
}

// AssignCategory appends a schema value to the named entries' category group.
func (l *Library) AssignCategory(ctx context.Context, filenames []string, group, value string) error {
	return l.catalog.AssignCategory(ctx, filenames, group, value)
}

// UnassignCategory removes a value from the named entries' category group.
func (l *Library) UnassignCategory(ctx context.Context, filenames []string, group, value string) error {
	return l.catalog.UnassignCategory(ctx, filenames, group, value)
}

// Entries returns a snapshot of the catalog in order.
func (l *Library) Entries() []Entry {
	return l.catalog.Entries()
}

// Preview partitions the selection into export groups without writing
// anything. An empty selection covers the whole catalog only for ScanAll.
func (l *Library) Preview(selection []string, mode ScanMode, interval int) ([]Group, error) {
	return l.catalog.Preview(selection, mode, interval)
}

// Export partitions the selection, writes one CSV row per group to w, and
// marks the exported entries. Returns the groups that were written.
func (l *Library) Export(ctx context.Context, selection []string, mode ScanMode, interval int, w io.Writer) ([]Group, error) {
	return l.catalog.Export(ctx, selection, mode, interval, w)
}

// Restore clears the exported mark on the named entries.
func (l *Library) Restore(ctx context.Context, filenames []string) error {
	return l.catalog.Restore(ctx, filenames)
}

// Schema returns the current category schema.
func (l *Library) Schema(ctx context.Context) (map[string][]string, error) {
	return l.catalog.Schema(ctx)
}

// AddCategoryGroup creates a new, empty category group.
func (l *Library) AddCategoryGroup(ctx context.Context, group string) error {
	return l.catalog.AddCategoryGroup(ctx, group)
}

// RemoveCategoryGroup deletes a category group and its values.
func (l *Library) RemoveCategoryGroup(ctx context.Context, group string) error {
	return l.catalog.RemoveCategoryGroup(ctx, group)
}

// AddCategoryValue appends a value to a category group.
func (l *Library) AddCategoryValue(ctx context.Context, group, value string) error {
	return l.catalog.AddCategoryValue(ctx, group, value)
}

// RemoveCategoryValue deletes a value from a category group.
func (l *Library) RemoveCategoryValue(ctx context.Context, group, value string) error {
	return l.catalog.RemoveCategoryValue(ctx, group, value)
}
