package search

import (
	"regexp"
)

// Iterator lazily yields matches in document order, without wrapping.
// It scans a snapshot of the buffer taken when it was created (or last
// Reset). Dropping the iterator abandons the scan; nothing is
// materialized up front.
type Iterator struct {
	e    *Engine
	re   *regexp.Regexp
	opts Options
	text string
	pos  int
}

// FindAll returns an iterator over every non-overlapping match from the
// start of the buffer.
func (e *Engine) FindAll(term string, opts Options) (*Iterator, error) {
	re, err := compile(term, opts)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		e:    e,
		re:   re,
		opts: opts,
		text: e.buf.Text(),
	}, nil
}

// Next returns the next match. It reports false when the scan is done.
func (it *Iterator) Next() (Match, bool) {
	for it.pos <= len(it.text) {
		ms, me, ok := firstMatch(it.re, it.text, it.pos, len(it.text), it.opts)
		if !ok {
			it.pos = len(it.text) + 1
			return Match{}, false
		}

		// Continue after the match; an empty match advances one rune
		// so the scan always terminates.
		if me > ms {
			it.pos = me
		} else {
			it.pos = ms + runeAdvance(it.text, ms)
		}
		return newMatch(it.text, ms, me, false), true
	}
	return Match{}, false
}

// Reset restarts the iterator on the buffer's current content.
func (it *Iterator) Reset() {
	it.text = it.e.buf.Text()
	it.pos = 0
}
