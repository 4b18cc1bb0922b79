package photocat

import (
	"context"
	"time"

	"github.com/heinz1110/photocat/internal/ports"
	"github.com/heinz1110/photocat/pkg/log"
)

// Logger is the structured logging interface accepted by WithLogger.
type Logger = log.Logger

// Importer receives files discovered outside the normal CLI flow, e.g.
// by the inbox watcher plugin. The library's catalog satisfies it.
type Importer interface {
	// Add imports the given image files and returns how many were new.
	Add(ctx context.Context, paths []string) (int, error)
}

// Plugin extends a Library with optional background behavior.
// Plugins are initialized in registration order when the library starts
// and shut down in reverse order when it stops.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string

	// Initialize starts the plugin. The context is canceled when the
	// library stops.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its goroutines.
	Shutdown(ctx context.Context) error
}

// PluginConfig provides plugins with the library wiring they may need.
type PluginConfig struct {
	// LibraryDir is the photocat library directory.
	LibraryDir string

	// InboxDir is the directory watched for new scans, if configured.
	InboxDir string

	// Extensions lists the image file extensions to consider, lowercase
	// without a leading dot.
	Extensions []string

	// DebounceDelay is how long plugins should wait for a file to settle
	// before importing it. Zero leaves the plugin's own default in place.
	DebounceDelay time.Duration

	// Importer feeds discovered files into the catalog.
	Importer Importer

	// Logger is the library logger.
	Logger Logger
}

// Option configures optional behavior of a Library.
type Option func(*options)

// options holds the optional configuration for a Library instance.
type options struct {
	logger  log.Logger
	prober  ports.ImageProber
	plugins []Plugin
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProber sets a custom image prober.
// If not provided, the EXIF prober is used.
func WithProber(prober ports.ImageProber) Option {
	return func(o *options) {
		o.prober = prober
	}
}

// WithPlugin registers a plugin to be initialized when the library starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
