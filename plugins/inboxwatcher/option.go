package inboxwatcher

import "github.com/heinz1110/photocat"

// WithInboxWatcher returns a photocat Option that enables inbox watching.
// When enabled, the plugin monitors the library's inbox directory and
// imports new scans into the catalog as they appear.
//
// Usage:
//
//	lib, err := photocat.Open(ctx, cfg,
//	    inboxwatcher.WithInboxWatcher(inboxwatcher.Config{
//	        DebounceDelay: 500 * time.Millisecond,
//	    }),
//	)
func WithInboxWatcher(cfg Config) photocat.Option {
	plugin := New(cfg)
	return photocat.WithPlugin(plugin)
}

// WithDefaultInboxWatcher returns a photocat Option that enables inbox
// watching with default settings (debounce 500ms, import existing files).
//
// Usage:
//
//	lib, err := photocat.Open(ctx, cfg, inboxwatcher.WithDefaultInboxWatcher())
func WithDefaultInboxWatcher() photocat.Option {
	return WithInboxWatcher(DefaultConfig())
}
