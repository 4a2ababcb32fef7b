// Package app wires QNote's components together for the command line
// front end. It loads configuration, opens the note store, and exposes
// one method per subcommand.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/config"
	"github.com/itzCozi/QNote-sub000/internal/document"
	"github.com/itzCozi/QNote-sub000/internal/engine/highlight"
	"github.com/itzCozi/QNote-sub000/internal/engine/spell"
	"github.com/itzCozi/QNote-sub000/internal/notestore"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means the
	// default under the user config directory.
	ConfigPath string
	// NotesDir overrides the configured note directory.
	NotesDir string
}

// App is the assembled application: configuration, note store, grammar
// registry, and the shared spell dictionary.
type App struct {
	cfg      config.Config
	store    *notestore.Store
	registry *highlight.Registry
	dict     *spell.Dictionary
}

// New loads configuration and opens the note store.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = defaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	registry := highlight.DefaultRegistry()
	if dir := expandHome(cfg.Highlight.GrammarDir); dir != "" {
		if err := loadGrammarDir(registry, dir); err != nil {
			return nil, err
		}
	}

	dict := spell.NewDictionary()
	if path := expandHome(cfg.Spell.Wordlist); path != "" {
		if err := dict.LoadPersonal(path); err != nil {
			return nil, err
		}
	}

	dir := opts.NotesDir
	if dir == "" {
		dir = expandHome(cfg.Notes.Dir)
	}
	if dir == "" {
		dir = defaultNotesDir()
	}
	store, err := notestore.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening note store: %w", err)
	}

	return &App{
		cfg:      cfg,
		store:    store,
		registry: registry,
		dict:     dict,
	}, nil
}

// Close releases the note store.
func (a *App) Close() error {
	return a.store.Close()
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Store returns the open note store.
func (a *App) Store() *notestore.Store { return a.store }

// openDocument loads a note into a fully wired document.
func (a *App) openDocument(id uuid.UUID) (*notestore.Note, *document.Document, error) {
	note, text, err := a.store.Load(id)
	if err != nil {
		return nil, nil, err
	}
	doc := document.New(
		document.WithText(text),
		document.WithNoteID(id),
		document.WithGrammar(a.registry.ForPath(note.Path)),
		document.WithLineEnding(note.LineEnding),
		document.WithTabWidth(a.cfg.Editor.TabWidth),
		document.WithUndoLimit(a.cfg.Editor.UndoLimit),
		document.WithCoalesceInterval(a.cfg.Editor.CoalesceInterval()),
		document.WithDictionary(a.dict),
	)
	return note, doc, nil
}

// loadGrammarDir registers every grammar YAML file found in dir on top
// of the builtins.
func loadGrammarDir(registry *highlight.Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading grammar dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		g, err := highlight.LoadGrammarFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("grammar %s: %w", name, err)
		}
		if err := registry.Register(g); err != nil {
			return fmt.Errorf("grammar %s: %w", name, err)
		}
	}
	return nil
}

func defaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "qnote", "config.toml")
}

func defaultNotesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "qnote-notes"
	}
	return filepath.Join(home, "qnote")
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
