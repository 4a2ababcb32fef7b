package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem abstracts file reads so tests can supply fixtures without
// touching the real disk.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Load reads the TOML file at path and merges it over the defaults. A
// missing file is not an error; the defaults come back unchanged.
func Load(path string) (Config, error) {
	return LoadWithFS(DefaultFS(), path)
}

// LoadWithFS is Load with an explicit file system.
func LoadWithFS(fs FileSystem, path string) (Config, error) {
	cfg := Default()

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Decoding over the populated struct keeps defaults for every key
	// the file leaves out.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects values a typo produces. Absent keys never reach
// here with zero values because decoding starts from the defaults.
func (c Config) validate() error {
	if c.Editor.TabWidth <= 0 {
		return fmt.Errorf("editor.tab_width must be positive, got %d", c.Editor.TabWidth)
	}
	if c.Editor.CoalesceIntervalMS < 0 {
		return fmt.Errorf("editor.coalesce_interval_ms must not be negative, got %d", c.Editor.CoalesceIntervalMS)
	}
	if c.Editor.UndoLimit <= 0 {
		return fmt.Errorf("editor.undo_limit must be positive, got %d", c.Editor.UndoLimit)
	}
	switch strings.ToLower(c.Editor.LineEnding) {
	case "lf", "crlf", "cr":
	default:
		return fmt.Errorf("editor.line_ending must be lf, crlf or cr, got %q", c.Editor.LineEnding)
	}
	return nil
}
