// Package inboxwatcher provides inbox directory monitoring for photocat.
// When enabled, it watches the inbox directory for new scans and imports
// them into the catalog as they appear.
package inboxwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/heinz1110/photocat"
	"github.com/heinz1110/photocat/pkg/log"
)

// Plugin implements inbox watching. It monitors the configured inbox
// directory and imports files with a matching extension once they have
// settled, so partially written scans are not picked up mid-copy.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay  time.Duration
	importExisting bool

	// Runtime state
	inboxDir   string
	extensions map[string]bool
	importer   photocat.Importer
	logger     photocat.Logger
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	pending    map[string]*time.Timer
}

// Config holds configuration options for the inbox watcher plugin.
type Config struct {
	// DebounceDelay is how long a file must stay quiet before it is
	// imported. Default: 500 milliseconds.
	DebounceDelay time.Duration

	// ImportExisting imports files already in the inbox when the watcher
	// starts. Default: true.
	ImportExisting bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay:  500 * time.Millisecond,
		ImportExisting: true,
	}
}

// New creates a new inbox watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 500 * time.Millisecond
	}

	return &Plugin{
		debounceDelay:  cfg.DebounceDelay,
		importExisting: cfg.ImportExisting,
		pending:        make(map[string]*time.Timer),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "inboxwatcher"
}

// Initialize sets up the plugin and starts the watcher loop.
func (p *Plugin) Initialize(ctx context.Context, cfg photocat.PluginConfig) error {
	p.mu.Lock()
	p.inboxDir = cfg.InboxDir
	p.importer = cfg.Importer
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	if cfg.DebounceDelay > 0 {
		p.debounceDelay = cfg.DebounceDelay
	}
	p.extensions = make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		p.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	p.mu.Unlock()

	if p.inboxDir == "" {
		p.logger.Warn("inbox watcher disabled: no inbox directory configured")
		return nil
	}
	if _, err := os.Stat(p.inboxDir); err != nil {
		return fmt.Errorf("inbox directory: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("inbox watcher initialized", log.String("dir", p.inboxDir))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watcher and waits for in-flight imports.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	for path, timer := range p.pending {
		timer.Stop()
		delete(p.pending, path)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// watchLoop watches the inbox directory for new files.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("inbox watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(p.inboxDir); err != nil {
		p.logger.Error("inbox watcher: failed to watch directory", log.Err(err))
		return
	}

	if p.importExisting {
		p.importCurrent(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !p.wanted(event.Name) {
				continue
			}
			p.debounceImport(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("inbox watcher: watcher error", log.Err(err))
		}
	}
}

// importCurrent imports the files already sitting in the inbox, in name order.
func (p *Plugin) importCurrent(ctx context.Context) {
	dirEntries, err := os.ReadDir(p.inboxDir)
	if err != nil {
		p.logger.Error("inbox watcher: failed to read inbox", log.Err(err))
		return
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(p.inboxDir, de.Name())
		if p.wanted(path) {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	added, err := p.importer.Add(ctx, paths)
	if err != nil {
		p.logger.Error("inbox watcher: initial import failed", log.Err(err))
		return
	}
	if added > 0 {
		p.logger.Info("inbox watcher: imported existing scans", log.Int("added", added))
	}
}

// debounceImport schedules an import for path, resetting any pending timer
// so a file still being written is only imported once it settles.
func (p *Plugin) debounceImport(ctx context.Context, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if timer, ok := p.pending[path]; ok {
		timer.Stop()
	}

	p.pending[path] = time.AfterFunc(p.debounceDelay, func() {
		p.mu.Lock()
		delete(p.pending, path)
		p.mu.Unlock()

		if ctx.Err() != nil {
			return
		}

		added, err := p.importer.Add(ctx, []string{path})
		if err != nil {
			p.logger.Error("inbox watcher: import failed",
				log.String("path", path), log.Err(err))
			return
		}
		if added > 0 {
			p.logger.Info("inbox watcher: imported scan", log.String("path", path))
		}
	})
}

// wanted reports whether path carries one of the configured extensions.
func (p *Plugin) wanted(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return false
	}
	if len(p.extensions) == 0 {
		return true
	}
	return p.extensions[ext]
}

// Ensure Plugin implements photocat.Plugin.
var _ photocat.Plugin = (*Plugin)(nil)
