package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PHOTOCAT_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("library", os.Getenv("PHOTOCAT_LIBRARY_DIR"), &cfg.LibraryDir)
	s.setString("inbox", os.Getenv("PHOTOCAT_INBOX_DIR"), &cfg.InboxDir)
	s.setString("output", os.Getenv("PHOTOCAT_EXPORT_PATH"), &cfg.ExportPath)
	s.setString("mode", os.Getenv("PHOTOCAT_SCAN_MODE"), &cfg.ScanMode)

	if err := s.setIntFromString("interval", os.Getenv("PHOTOCAT_INTERVAL"), &cfg.Interval); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("PHOTOCAT_DEBOUNCE_DELAY"), &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setStringsFromString("extensions", os.Getenv("PHOTOCAT_EXTENSIONS"), &cfg.Extensions)
	s.setBoolFromString("verbose", os.Getenv("PHOTOCAT_VERBOSE"), &cfg.Verbose)

	return nil
}
