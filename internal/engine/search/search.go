// Package search finds and replaces text in a buffer. Terms compile to
// regular expressions; literal searches are quoted first. Matching
// works on the buffer's text, wrap-around is explicit in the result,
// and replace-all walks the live buffer so every edit's offsets are
// current when it is applied.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

var (
	// ErrInvalidRegex is returned when a pattern does not compile.
	ErrInvalidRegex = errors.New("invalid regex")

	// ErrNotFound is returned when a term has no match.
	ErrNotFound = errors.New("not found")
)

// Options control how a term is matched.
type Options struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
	Backward      bool

	// WordBoundary overrides the default Unicode word segmentation
	// used for WholeWord checks. It receives the full text and the
	// match bounds.
	WordBoundary func(text string, start, end int) bool
}

// Match is one found occurrence.
type Match struct {
	Range buffer.Range
	Text  string

	// Wrapped is true when the match was found by wrapping around the
	// end (or start, for backward searches) of the buffer.
	Wrapped bool
}

// Engine searches one buffer.
type Engine struct {
	buf *buffer.Buffer
}

// NewEngine creates a search engine over the buffer.
func NewEngine(buf *buffer.Buffer) *Engine {
	return &Engine{buf: buf}
}

// compile turns a term and options into a regexp.
func compile(term string, opts Options) (*regexp.Regexp, error) {
	pat := term
	if !opts.Regex {
		pat = regexp.QuoteMeta(pat)
	}
	if !opts.CaseSensitive {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}
	return re, nil
}

// Find returns the first match at or after from (before, for backward
// searches), wrapping around the buffer once. No match is ErrNotFound.
func (e *Engine) Find(term string, from buffer.ByteOffset, opts Options) (Match, error) {
	re, err := compile(term, opts)
	if err != nil {
		return Match{}, err
	}

	text := e.buf.Text()
	f := int(from)
	if f < 0 {
		f = 0
	}
	if f > len(text) {
		f = len(text)
	}

	if opts.Backward {
		return findBackward(re, text, f, opts)
	}
	return findForward(re, text, f, opts)
}

func findForward(re *regexp.Regexp, text string, from int, opts Options) (Match, error) {
	if ms, me, ok := firstMatch(re, text, from, len(text), opts); ok {
		return newMatch(text, ms, me, false), nil
	}
	if ms, me, ok := firstMatch(re, text, 0, from, opts); ok {
		return newMatch(text, ms, me, true), nil
	}
	return Match{}, ErrNotFound
}

func findBackward(re *regexp.Regexp, text string, from int, opts Options) (Match, error) {
	if ms, me, ok := lastMatch(re, text, 0, from, opts); ok {
		return newMatch(text, ms, me, false), nil
	}
	if ms, me, ok := lastMatch(re, text, from, len(text), opts); ok {
		return newMatch(text, ms, me, true), nil
	}
	return Match{}, ErrNotFound
}

func newMatch(text string, ms, me int, wrapped bool) Match {
	return Match{
		Range:   buffer.NewRange(buffer.ByteOffset(ms), buffer.ByteOffset(me)),
		Text:    text[ms:me],
		Wrapped: wrapped,
	}
}

// firstMatch returns the first acceptable match starting in [lo, hi).
// Matches may extend beyond hi; only the start is bounded.
func firstMatch(re *regexp.Regexp, text string, lo, hi int, opts Options) (int, int, bool) {
	pos := lo
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			return 0, 0, false
		}
		ms, me := pos+loc[0], pos+loc[1]
		if ms >= hi {
			return 0, 0, false
		}
		if !opts.WholeWord || wholeWordAt(text, ms, me, opts) {
			return ms, me, true
		}
		pos = ms + runeAdvance(text, ms)
	}
	return 0, 0, false
}

// lastMatch returns the last acceptable match starting in [lo, hi).
func lastMatch(re *regexp.Regexp, text string, lo, hi int, opts Options) (int, int, bool) {
	var fs, fe int
	found := false
	pos := lo
	for {
		ms, me, ok := firstMatch(re, text, pos, hi, opts)
		if !ok {
			break
		}
		fs, fe, found = ms, me, true
		pos = ms + runeAdvance(text, ms)
	}
	return fs, fe, found
}

// runeAdvance returns the byte width of the rune at pos, at least 1 so
// scans always make progress.
func runeAdvance(text string, pos int) int {
	_, size := utf8.DecodeRuneInString(text[pos:])
	if size < 1 {
		return 1
	}
	return size
}

// wholeWordAt reports whether [start, end) lies on word boundaries.
// The default segmenter runs Unicode word segmentation over the
// surrounding line, so "cat" does not match inside "cat's".
func wholeWordAt(text string, start, end int, opts Options) bool {
	if opts.WordBoundary != nil {
		return opts.WordBoundary(text, start, end)
	}

	lo := strings.LastIndexByte(text[:start], '\n') + 1
	hi := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		hi = end + i
	}

	startOK := start == lo
	endOK := end == hi
	pos := lo
	state := -1
	rest := text[lo:hi]
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		pos += len(word)
		if pos == start {
			startOK = true
		}
		if pos == end {
			endOK = true
		}
		if pos > end {
			break
		}
	}
	return startOK && endOK
}
