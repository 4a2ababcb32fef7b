// Package spell flags words a dictionary does not know. The checker
// reads token spans from the highlight engine, so strings, comments,
// keywords, and numbers are never spell checked.
package spell

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed words.txt
var baseWordList string

// Dictionary is a case-folded word set: the embedded base list, an
// optional personal list, and words learned during the session.
type Dictionary struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// NewDictionary returns a dictionary seeded with the embedded base
// list.
func NewDictionary() *Dictionary {
	d := &Dictionary{words: make(map[string]struct{})}
	// The embedded list is well-formed; a scan error cannot happen.
	_ = d.merge(strings.NewReader(baseWordList))
	return d
}

// LoadPersonal merges a personal word list: one word per line, blank
// lines and # comments ignored. A missing file is not an error.
func (d *Dictionary) LoadPersonal(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open word list %s: %w", path, err)
	}
	defer f.Close()

	if err := d.merge(f); err != nil {
		return fmt.Errorf("read word list %s: %w", path, err)
	}
	return nil
}

func (d *Dictionary) merge(r io.Reader) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.words[strings.ToLower(line)] = struct{}{}
	}
	return sc.Err()
}

// Add learns a word for the session.
func (d *Dictionary) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.words[word] = struct{}{}
}

// Contains reports whether word is known, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Size returns the number of known words.
func (d *Dictionary) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}
