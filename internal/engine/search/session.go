package search

import (
	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// Session carries interactive search state: the last term, its options,
// and the current match. The current match is pinned to the buffer
// revision it was found at and goes stale as soon as the buffer moves
// on.
type Session struct {
	buf  *buffer.Buffer
	term string
	opts Options

	current  Match
	hasMatch bool
	revision uint64
}

// NewSession creates a search session for the buffer.
func NewSession(buf *buffer.Buffer) *Session {
	return &Session{buf: buf}
}

// Set records the active term and options, dropping the current match.
func (s *Session) Set(term string, opts Options) {
	s.term = term
	s.opts = opts
	s.hasMatch = false
}

// LastTerm returns the most recent search term.
func (s *Session) LastTerm() string {
	return s.term
}

// Options returns the options of the most recent search.
func (s *Session) Options() Options {
	return s.opts
}

// SetCurrent pins m as the current match at the buffer's present
// revision.
func (s *Session) SetCurrent(m Match) {
	s.current = m
	s.hasMatch = true
	s.revision = s.buf.Revision()
}

// Current returns the pinned match. It reports false when no match is
// pinned or the buffer has changed since it was found.
func (s *Session) Current() (Match, bool) {
	if !s.hasMatch || s.revision != s.buf.Revision() {
		return Match{}, false
	}
	return s.current, true
}

// Clear drops the term and the pinned match.
func (s *Session) Clear() {
	s.term = ""
	s.opts = Options{}
	s.hasMatch = false
}
