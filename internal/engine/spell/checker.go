package spell

import (
	"strings"
	"sync"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
	"github.com/itzCozi/QNote-sub000/internal/engine/highlight"
)

// minWordRunes is the shortest word worth checking.
const minWordRunes = 3

// colRange is a word span in line-local byte columns, so cached
// results survive edits on other lines.
type colRange struct {
	start, end int
}

type checkedLine struct {
	spans []colRange
	valid bool
}

// Checker reports misspelled word ranges per line, caching results
// until the line is edited.
type Checker struct {
	mu   sync.Mutex
	buf  *buffer.Buffer
	eng  *highlight.Engine
	dict *Dictionary

	lines []checkedLine
}

// NewChecker creates a checker over the buffer's highlight tokens.
func NewChecker(buf *buffer.Buffer, eng *highlight.Engine, dict *Dictionary) *Checker {
	return &Checker{
		buf:   buf,
		eng:   eng,
		dict:  dict,
		lines: make([]checkedLine, buf.LineCount()),
	}
}

// OnEdit realigns the per-line cache after an applied edit and marks
// the touched lines dirty. The dirty set matches what the highlight
// engine reports for the same edit.
func (c *Checker) OnEdit(e buffer.Edit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.lineOf(e.Range.Start)
	if from > len(c.lines) {
		from = len(c.lines)
	}
	oldNL := strings.Count(e.OldText, "\n")
	newNL := strings.Count(e.NewText, "\n")

	to := from + oldNL + 1
	if to > len(c.lines) {
		to = len(c.lines)
	}
	fresh := make([]checkedLine, newNL+1)
	c.lines = append(c.lines[:from], append(fresh, c.lines[to:]...)...)
}

// InvalidateAll drops every cached line. Needed after the dictionary
// learns a word, since previously flagged ranges may now be clean.
func (c *Checker) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make([]checkedLine, c.buf.LineCount())
}

// Learn adds word to the dictionary and drops stale results.
func (c *Checker) Learn(word string) {
	c.dict.Add(word)
	c.InvalidateAll()
}

// CheckLine returns the misspelled ranges on the line, in buffer
// offsets, sorted left to right.
func (c *Checker) CheckLine(line int) ([]buffer.Range, error) {
	lr, err := c.buf.LineRange(line)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if line < len(c.lines) && c.lines[line].valid {
		res := translate(c.lines[line].spans, lr.Start)
		c.mu.Unlock()
		return res, nil
	}
	c.mu.Unlock()

	spans, err := c.scanLine(line, lr)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if line >= len(c.lines) {
		c.lines = append(c.lines, make([]checkedLine, line-len(c.lines)+1)...)
	}
	c.lines[line] = checkedLine{spans: spans, valid: true}
	c.mu.Unlock()

	return translate(spans, lr.Start), nil
}

// Check aggregates CheckLine over lines [start, end).
func (c *Checker) Check(start, end int) ([]buffer.Range, error) {
	if start < 0 {
		start = 0
	}
	if total := c.buf.LineCount(); end > total {
		end = total
	}

	var out []buffer.Range
	for line := start; line < end; line++ {
		ranges, err := c.CheckLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, ranges...)
	}
	return out, nil
}

// scanLine spell checks one line from its highlight tokens.
func (c *Checker) scanLine(line int, lr buffer.Range) ([]colRange, error) {
	tokens, err := c.eng.TokensForLine(line)
	if err != nil {
		return nil, err
	}

	var spans []colRange
	for _, tok := range tokens {
		if tok.Kind != highlight.KindPlain && tok.Kind != highlight.KindIdentifier {
			continue
		}
		text, err := c.buf.Read(tok.Range)
		if err != nil {
			return nil, err
		}
		base := int(tok.Range.Start - lr.Start)
		for _, w := range wordsIn(text) {
			if c.known(text[w.start:w.end]) {
				continue
			}
			spans = append(spans, colRange{base + w.start, base + w.end})
		}
	}
	return spans, nil
}

// known accepts dictionary words and their possessive forms.
func (c *Checker) known(word string) bool {
	if c.dict.Contains(word) {
		return true
	}
	if s, ok := strings.CutSuffix(word, "'s"); ok {
		return c.dict.Contains(s)
	}
	return false
}

// wordsIn segments text into checkable words: letter-bearing Unicode
// word segments of at least minWordRunes runes.
func wordsIn(text string) []colRange {
	var out []colRange
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if checkable(word) {
			out = append(out, colRange{pos, pos + len(word)})
		}
		pos += len(word)
	}
	return out
}

func checkable(word string) bool {
	runes := 0
	hasLetter := false
	for _, r := range word {
		runes++
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter && runes >= minWordRunes
}

func (c *Checker) lineOf(offset buffer.ByteOffset) int {
	p, err := c.buf.PositionFor(offset)
	if err != nil {
		return c.buf.LineCount() - 1
	}
	return p.Line
}

func translate(spans []colRange, base buffer.ByteOffset) []buffer.Range {
	out := make([]buffer.Range, len(spans))
	for i, sp := range spans {
		out[i] = buffer.NewRange(base+buffer.ByteOffset(sp.start), base+buffer.ByteOffset(sp.end))
	}
	return out
}
