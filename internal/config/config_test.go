package config

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.CoalesceIntervalMS != 1000 {
		t.Errorf("CoalesceIntervalMS = %d, want 1000", cfg.Editor.CoalesceIntervalMS)
	}
	if cfg.Editor.UndoLimit != 1000 {
		t.Errorf("UndoLimit = %d, want 1000", cfg.Editor.UndoLimit)
	}
	if cfg.Editor.LineEnding != "lf" {
		t.Errorf("LineEnding = %q, want lf", cfg.Editor.LineEnding)
	}
	if cfg.Search.CaseSensitive {
		t.Error("CaseSensitive should default to false")
	}
	if !cfg.Spell.Enabled {
		t.Error("Spell.Enabled should default to true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadWithFS(memFS{}, "/nope/config.toml")
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	fsys := memFS{"/config.toml": `
[editor]
tab_width = 8
line_ending = "crlf"

[search]
case_sensitive = true

[notes]
dir = "/tmp/notes"
`}

	cfg, err := LoadWithFS(fsys, "/config.toml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineEnding != "crlf" {
		t.Errorf("LineEnding = %q, want crlf", cfg.Editor.LineEnding)
	}
	if !cfg.Search.CaseSensitive {
		t.Error("CaseSensitive should be true")
	}
	if cfg.Notes.Dir != "/tmp/notes" {
		t.Errorf("Notes.Dir = %q", cfg.Notes.Dir)
	}

	// Untouched keys keep their defaults.
	if cfg.Editor.CoalesceIntervalMS != 1000 {
		t.Errorf("CoalesceIntervalMS = %d, want default 1000", cfg.Editor.CoalesceIntervalMS)
	}
	if !cfg.Spell.Enabled {
		t.Error("Spell.Enabled should keep its default")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"syntax error", "[editor\ntab_width = 4", "parsing"},
		{"zero tab width", "[editor]\ntab_width = 0", "tab_width"},
		{"negative interval", "[editor]\ncoalesce_interval_ms = -5", "coalesce_interval_ms"},
		{"zero undo limit", "[editor]\nundo_limit = 0", "undo_limit"},
		{"unknown line ending", "[editor]\nline_ending = \"mac\"", "line_ending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := memFS{"/config.toml": tt.toml}
			_, err := LoadWithFS(fsys, "/config.toml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestCoalesceInterval(t *testing.T) {
	e := Editor{CoalesceIntervalMS: 250}
	if got := e.CoalesceInterval(); got != 250*time.Millisecond {
		t.Errorf("CoalesceInterval = %v", got)
	}
}

func TestLineEndingStyle(t *testing.T) {
	tests := []struct {
		in   string
		want buffer.LineEnding
	}{
		{"lf", buffer.LineEndingLF},
		{"crlf", buffer.LineEndingCRLF},
		{"CRLF", buffer.LineEndingCRLF},
		{"cr", buffer.LineEndingCR},
		{"", buffer.LineEndingLF},
	}
	for _, tt := range tests {
		e := Editor{LineEnding: tt.in}
		if got := e.LineEndingStyle(); got != tt.want {
			t.Errorf("LineEndingStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
