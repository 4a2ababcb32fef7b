package document

import (
	"sync"

	"github.com/itzCozi/QNote-sub000/internal/clipboard"
	"github.com/itzCozi/QNote-sub000/internal/engine/highlight"
	"github.com/itzCozi/QNote-sub000/internal/engine/spell"
)

// Session holds the open documents as an ordered tab list plus the
// state shared between them: the clipboard ring, its system bridge,
// the grammar registry, and the spell dictionary.
type Session struct {
	mu     sync.RWMutex
	docs   []*Document
	active int

	ring     *clipboard.Ring
	bridge   clipboard.SystemBridge
	registry *highlight.Registry
	dict     *spell.Dictionary
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session)

// WithBridge connects a system clipboard bridge. Without one the
// session uses its internal ring only.
func WithBridge(b clipboard.SystemBridge) SessionOption {
	return func(s *Session) {
		s.bridge = b
	}
}

// WithRegistry sets the grammar registry used to pick languages.
func WithRegistry(r *highlight.Registry) SessionOption {
	return func(s *Session) {
		s.registry = r
	}
}

// WithRingCapacity sets the clipboard ring size.
func WithRingCapacity(n int) SessionOption {
	return func(s *Session) {
		s.ring = clipboard.NewRing(n)
	}
}

// NewSession creates an empty session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		active: -1,
		ring:   clipboard.NewRing(clipboard.DefaultCapacity),
		dict:   spell.NewDictionary(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = highlight.DefaultRegistry()
	}
	return s
}

// Tabs

// Open appends a document as the rightmost tab and makes it active.
// It returns the document's tab index.
func (s *Session) Open(d *Document) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, d)
	s.active = len(s.docs) - 1
	return s.active
}

// OpenText builds a document for the given content, picking the
// grammar from the path's extension and sharing the session
// dictionary, then opens it.
func (s *Session) OpenText(path, text string, opts ...Option) *Document {
	all := append([]Option{
		WithText(text),
		WithGrammar(s.registry.ForPath(path)),
		WithDictionary(s.dict),
	}, opts...)
	d := New(all...)
	s.Open(d)
	return d
}

// OpenBlank opens an empty plain text document.
func (s *Session) OpenBlank() *Document {
	d := New(WithDictionary(s.dict))
	s.Open(d)
	return d
}

// Close removes the tab at the given index. Closing the active tab
// activates its left neighbor; closing the leftmost active tab keeps
// index zero active. It reports whether a tab was closed.
func (s *Session) Close(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.docs) {
		return false
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)

	switch {
	case len(s.docs) == 0:
		s.active = -1
	case i < s.active:
		s.active--
	case i == s.active:
		if s.active > 0 {
			s.active--
		}
	}
	if s.active >= len(s.docs) {
		s.active = len(s.docs) - 1
	}
	return true
}

// Active returns the active document, or nil for an empty session.
func (s *Session) Active() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active < 0 {
		return nil
	}
	return s.docs[s.active]
}

// ActiveIndex returns the active tab index, or -1 for an empty
// session.
func (s *Session) ActiveIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive activates the tab at the given index. It reports whether
// the index was valid.
func (s *Session) SetActive(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.docs) {
		return false
	}
	s.active = i
	return true
}

// Next activates the tab to the right, wrapping to the first.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.docs) > 0 {
		s.active = (s.active + 1) % len(s.docs)
	}
}

// Prev activates the tab to the left, wrapping to the last.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.docs) > 0 {
		s.active = (s.active + len(s.docs) - 1) % len(s.docs)
	}
}

// Count returns the number of open tabs.
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Documents returns the open documents in tab order.
func (s *Session) Documents() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Document(nil), s.docs...)
}

// Clipboard

// Copy pushes text onto the clipboard ring and mirrors it to the
// system clipboard when one is connected. Bridge failures are ignored;
// the ring keeps working without the OS clipboard.
func (s *Session) Copy(text string) {
	s.ring.Push(text)
	if s.bridge != nil {
		_ = s.bridge.Write(text)
	}
}

// CopySelection copies the active document's primary selection. It
// reports whether anything was copied.
func (s *Session) CopySelection() bool {
	d := s.Active()
	if d == nil {
		return false
	}
	text, err := d.SelectedText()
	if err != nil || text == "" {
		return false
	}
	s.Copy(text)
	return true
}

// Paste returns the text a paste should insert: foreign system
// clipboard content when it differs from the last copy, otherwise the
// ring's current entry.
func (s *Session) Paste() (string, bool) {
	if s.bridge != nil {
		if text, err := s.bridge.Read(); err == nil && text != "" {
			items := s.ring.Items()
			if len(items) == 0 || items[0] != text {
				s.ring.Push(text)
				return text, true
			}
		}
	}
	return s.ring.Current()
}

// PastePrevious rotates the ring to the next older entry and returns
// it.
func (s *Session) PastePrevious() (string, bool) {
	return s.ring.Cycle()
}

// Ring returns the clipboard ring.
func (s *Session) Ring() *clipboard.Ring {
	return s.ring
}

// Shared State

// Registry returns the session's grammar registry.
func (s *Session) Registry() *highlight.Registry {
	return s.registry
}

// Dictionary returns the spell dictionary shared by documents opened
// through the session.
func (s *Session) Dictionary() *spell.Dictionary {
	return s.dict
}

// Learn adds a word to the shared dictionary and clears every open
// document's cached spell results.
func (s *Session) Learn(word string) {
	s.dict.Add(word)
	for _, d := range s.Documents() {
		d.Spell().InvalidateAll()
	}
}
