// Package cliconfig holds the CLI configuration for photocat and the
// machinery for layering defaults, config file, environment, and flags.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/heinz1110/photocat/internal/domain"
)

// Config holds CLI configuration for photocat.
type Config struct {
	// LibraryDir is where catalog.json and categories.json live.
	LibraryDir string

	// InboxDir is the directory watched for new scans by `photocat watch`.
	InboxDir string

	// ExportPath is where `photocat export` writes CSV; "-" means stdout.
	ExportPath string

	// ScanMode is the default export partitioning mode.
	ScanMode string

	// Interval is the default chunk size / stride for the interval modes.
	Interval int

	// Extensions lists the image file extensions the inbox watcher imports.
	Extensions []string

	// DebounceDelay is how long the watcher waits after a file event
	// before importing, so half-written scans settle first.
	DebounceDelay time.Duration

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LibraryDir:    defaultLibraryDir(),
		ExportPath:    "-",
		ScanMode:      domain.ScanSingle.String(),
		Interval:      1,
		Extensions:    []string{"jpg", "jpeg", "png", "tif", "tiff", "bmp"},
		DebounceDelay: 500 * time.Millisecond,
	}
}

// defaultLibraryDir returns ~/.photocat, or a relative fallback when the
// home directory cannot be determined.
func defaultLibraryDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".photocat")
	}
	return ".photocat"
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.LibraryDir == "" {
		return fmt.Errorf("%w: library dir is required", domain.ErrInvalidConfig)
	}

	mode, err := domain.ParseScanMode(c.ScanMode)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if mode.RequiresInterval() && c.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1 for mode %s", domain.ErrInvalidConfig, mode)
	}

	if c.ExportPath == "" {
		c.ExportPath = "-"
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("%w: debounce delay must be positive", domain.ErrInvalidConfig)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one watched extension is required", domain.ErrInvalidConfig)
	}
	for i, ext := range c.Extensions {
		c.Extensions[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a string slice if non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setStringsFromString splits a comma-separated string into the destination.
func (s *configSetter) setStringsFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}
