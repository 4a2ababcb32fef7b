package highlight

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownLanguage is returned when no grammar is registered under a
// requested name.
var ErrUnknownLanguage = errors.New("unknown language")

// Registry maps language names and file extensions to grammars.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Grammar
	byExt  map[string]*Grammar
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Grammar),
		byExt:  make(map[string]*Grammar),
	}
}

// Register adds a grammar, replacing any previous entry for the same
// name or extensions. Grammars built outside LoadGrammar are compiled
// here.
func (r *Registry) Register(g *Grammar) error {
	if g.keywordSet == nil {
		if err := g.compile(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[g.Name] = g
	for _, ext := range g.Extensions {
		r.byExt[strings.ToLower(ext)] = g
	}
	return nil
}

// Lookup returns the grammar registered under the language name.
func (r *Registry) Lookup(name string) (*Grammar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
	}
	return g, nil
}

// ForPath returns the grammar for the file's extension, falling back to
// plain text.
func (r *Registry) ForPath(path string) *Grammar {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if g, ok := r.byExt[ext]; ok {
		return g
	}
	return Plain()
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with the builtin grammars.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Plain())
	r.Register(Markdown())
	r.Register(Go())
	return r
}
