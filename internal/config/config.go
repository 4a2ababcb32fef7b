package config

import (
	"strings"
	"time"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// Config holds every QNote setting, grouped by section.
type Config struct {
	Editor    Editor    `toml:"editor"`
	Search    Search    `toml:"search"`
	Highlight Highlight `toml:"highlight"`
	Spell     Spell     `toml:"spell"`
	Notes     Notes     `toml:"notes"`
}

// Editor configures buffer and history behavior.
type Editor struct {
	// TabWidth is the number of columns a tab advances to.
	TabWidth int `toml:"tab_width"`
	// CoalesceIntervalMS is the largest gap, in milliseconds, between
	// keystrokes that still merge into one undo step.
	CoalesceIntervalMS int `toml:"coalesce_interval_ms"`
	// UndoLimit caps retained undo steps per document.
	UndoLimit int `toml:"undo_limit"`
	// LineEnding is the style given to new documents: "lf", "crlf" or
	// "cr". Loaded notes keep whatever style the file carries.
	LineEnding string `toml:"line_ending"`
}

// Search configures default search behavior.
type Search struct {
	CaseSensitive bool `toml:"case_sensitive"`
}

// Highlight configures the syntax highlighter.
type Highlight struct {
	// GrammarDir is an extra directory of grammar YAML files loaded on
	// top of the built-in grammars.
	GrammarDir string `toml:"grammar_dir"`
}

// Spell configures the spell checker.
type Spell struct {
	Enabled bool `toml:"enabled"`
	// Wordlist is a personal word file, one word per line.
	Wordlist string `toml:"wordlist"`
}

// Notes configures note storage.
type Notes struct {
	// Dir is the note directory. Empty means the platform default under
	// the user's home.
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: Editor{
			TabWidth:           4,
			CoalesceIntervalMS: 1000,
			UndoLimit:          1000,
			LineEnding:         "lf",
		},
		Search: Search{
			CaseSensitive: false,
		},
		Spell: Spell{
			Enabled: true,
		},
	}
}

// CoalesceInterval returns the coalescing gap as a duration.
func (e Editor) CoalesceInterval() time.Duration {
	return time.Duration(e.CoalesceIntervalMS) * time.Millisecond
}

// LineEndingStyle maps the configured name onto the buffer's style.
func (e Editor) LineEndingStyle() buffer.LineEnding {
	switch strings.ToLower(e.LineEnding) {
	case "crlf":
		return buffer.LineEndingCRLF
	case "cr":
		return buffer.LineEndingCR
	default:
		return buffer.LineEndingLF
	}
}
