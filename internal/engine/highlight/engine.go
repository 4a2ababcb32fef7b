package highlight

import (
	"strings"
	"sync"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// lineEntry caches one line's scan result. start is the state the line
// was scanned under; the entry is correct exactly when the predecessor
// still ends in that state.
type lineEntry struct {
	spans []span
	start State
	end   State
	valid bool
}

// Engine highlights one buffer with one grammar. It listens to the
// buffer's edits through OnEdit and retokenizes lazily.
type Engine struct {
	mu      sync.Mutex
	buf     *buffer.Buffer
	grammar *Grammar
	lines   []lineEntry
}

// NewEngine creates an engine for the buffer. A nil grammar means plain
// text.
func NewEngine(buf *buffer.Buffer, g *Grammar) *Engine {
	if g == nil {
		g = Plain()
	}
	return &Engine{
		buf:     buf,
		grammar: g,
		lines:   make([]lineEntry, buf.LineCount()),
	}
}

// Grammar returns the active grammar.
func (e *Engine) Grammar() *Grammar {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grammar
}

// SetGrammar switches languages and invalidates every cached line.
func (e *Engine) SetGrammar(g *Grammar) {
	if g == nil {
		g = Plain()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grammar = g
	for i := range e.lines {
		e.lines[i] = lineEntry{}
	}
}

// InvalidateAll drops the whole cache, forcing a rescan on the next
// request. Used when the buffer content is replaced wholesale.
func (e *Engine) InvalidateAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = make([]lineEntry, e.buf.LineCount())
}

// OnEdit realigns the line cache after an applied edit and returns the
// indices of the lines it marked dirty. The edit must already be
// applied to the buffer.
func (e *Engine) OnEdit(ed buffer.Edit) []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.lineOf(ed.Range.Start)
	if from > len(e.lines) {
		from = len(e.lines)
	}
	oldNL := strings.Count(ed.OldText, "\n")
	newNL := strings.Count(ed.NewText, "\n")

	// Splice the edited line span so cache indices track buffer lines.
	to := from + oldNL + 1
	if to > len(e.lines) {
		to = len(e.lines)
	}
	fresh := make([]lineEntry, newNL+1)
	e.lines = append(e.lines[:from], append(fresh, e.lines[to:]...)...)

	dirty := make([]int, 0, newNL+1)
	for i := 0; i <= newNL && from+i < len(e.lines); i++ {
		dirty = append(dirty, from+i)
	}
	return dirty
}

// TokensForLine returns the line's tokens in buffer offsets,
// highlighting the line first if needed. An empty line has no tokens.
func (e *Engine) TokensForLine(line int) ([]Token, error) {
	if err := e.EnsureHighlighted(line, line+1); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	lr, err := e.buf.LineRange(line)
	if err != nil {
		return nil, err
	}
	if line >= len(e.lines) {
		return nil, buffer.ErrOutOfRange
	}

	entry := e.lines[line]
	tokens := make([]Token, len(entry.spans))
	for i, sp := range entry.spans {
		tokens[i] = Token{
			Range: buffer.NewRange(
				lr.Start+buffer.ByteOffset(sp.start),
				lr.Start+buffer.ByteOffset(sp.end),
			),
			Kind: sp.kind,
		}
	}
	return tokens, nil
}

// LineState returns the scanner state at the end of the line,
// highlighting through it if needed.
func (e *Engine) LineState(line int) (State, error) {
	if err := e.EnsureHighlighted(line, line+1); err != nil {
		return StateNormal, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if line < 0 || line >= len(e.lines) {
		return StateNormal, buffer.ErrOutOfRange
	}
	return e.lines[line].end, nil
}

// EnsureHighlighted tokenizes lines [start, end) plus whatever tail the
// state propagation demands. Bounds clamp to the document. Rescanning
// stops at the first line beyond the range whose cached scan is still
// correct under the incoming state; every later line is then correct
// too.
func (e *Engine) EnsureHighlighted(start, end int) error {
	if start > end || start < 0 {
		return buffer.ErrOutOfRange
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	total := e.buf.LineCount()
	if len(e.lines) != total {
		// Cache shape lost track of the buffer; start over.
		e.lines = make([]lineEntry, total)
	}
	if end > total {
		end = total
	}
	if start >= total {
		return nil
	}

	// Back up to the nearest line whose incoming state is known.
	scan := start
	for scan > 0 && !e.lines[scan-1].valid {
		scan--
	}
	state := StateNormal
	if scan > 0 {
		state = e.lines[scan-1].end
	}

	for line := scan; line < total; line++ {
		entry := &e.lines[line]
		if entry.valid && entry.start == state {
			if line >= end {
				break
			}
			state = entry.end
			continue
		}
		spans, endState := scanLine(e.grammar, e.lineText(line), state)
		*entry = lineEntry{spans: spans, start: state, end: endState, valid: true}
		state = endState
	}
	return nil
}

// lineOf returns the line containing the offset.
func (e *Engine) lineOf(offset buffer.ByteOffset) int {
	p, err := e.buf.PositionFor(offset)
	if err != nil {
		return e.buf.LineCount() - 1
	}
	return p.Line
}

// lineText reads the line's text without its trailing newline.
func (e *Engine) lineText(line int) string {
	lr, err := e.buf.LineRange(line)
	if err != nil {
		return ""
	}
	text, err := e.buf.Read(lr)
	if err != nil {
		return ""
	}
	return text
}
