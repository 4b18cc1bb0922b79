package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	LibraryDir    string   `toml:"library_dir"`
	InboxDir      string   `toml:"inbox_dir"`
	ExportPath    string   `toml:"export_path"`
	ScanMode      string   `toml:"scan_mode"`
	Interval      int      `toml:"interval"`
	Extensions    []string `toml:"extensions"`
	DebounceDelay string   `toml:"debounce_delay"`
	Verbose       *bool    `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.photocat/config.toml if the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".photocat", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("library", fc.LibraryDir, &cfg.LibraryDir)
	s.setString("inbox", fc.InboxDir, &cfg.InboxDir)
	s.setString("output", fc.ExportPath, &cfg.ExportPath)
	s.setString("mode", fc.ScanMode, &cfg.ScanMode)
	s.setInt("interval", fc.Interval, &cfg.Interval)
	s.setStrings("extensions", fc.Extensions, &cfg.Extensions)

	if err := s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
