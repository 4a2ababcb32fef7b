package buffer

import (
	"errors"
	"strings"
	"sync"

	"github.com/zyedidia/rope"
)

// ErrOutOfRange is returned when an offset, range, or line index lies
// outside the buffer bounds.
var ErrOutOfRange = errors.New("out of range")

// LineEnding specifies the line ending style recorded at load and used
// for serialization. Buffer content is always held with LF internally.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is the editable text store. It pairs a rope with a line-start
// index and describes every mutation as an Edit value.
// All methods are thread-safe, though the engine expects a single
// writer: the owning document.
type Buffer struct {
	mu         sync.RWMutex
	rope       *rope.Node
	lines      *lineIndex
	revision   uint64
	lineEnding LineEnding
	tabWidth   int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		rope:       rope.New([]byte{}),
		lines:      newLineIndex(""),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content. Line endings in
// the content are normalized to LF; the style to use when serializing
// is taken from options (WithLineEnding) or defaults to LF.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	s = normalizeNewlines(s)
	b.rope = rope.New([]byte(s))
	b.lines = newLineIndex(s)
	return b
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.rope.Value())
}

// Read returns the text in the given byte range.
func (b *Buffer) Read(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.validRange(r) {
		return "", ErrOutOfRange
	}
	return string(b.rope.Slice(int(r.Start), int(r.End))), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.rope.Len())
}

// LineCount returns the number of lines. A buffer always has at least
// one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.count()
}

// LineRange returns the byte range of a line, excluding its trailing
// newline.
func (b *Buffer) LineRange(line int) (Range, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineRangeLocked(line)
}

func (b *Buffer) lineRangeLocked(line int) (Range, error) {
	if line < 0 || line >= b.lines.count() {
		return Range{}, ErrOutOfRange
	}
	start := b.lines.start(line)
	var end ByteOffset
	if line == b.lines.count()-1 {
		end = ByteOffset(b.rope.Len())
	} else {
		end = b.lines.start(line+1) - 1
	}
	return Range{Start: start, End: end}, nil
}

// LineText returns the text of a line without its trailing newline.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, err := b.lineRangeLocked(line)
	if err != nil {
		return "", err
	}
	return string(b.rope.Slice(int(r.Start), int(r.End))), nil
}

// Coordinate Conversion

// PositionFor converts a byte offset to a line/column point. An offset
// equal to the buffer length maps to the end of the last line.
func (b *Buffer) PositionFor(offset ByteOffset) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset > ByteOffset(b.rope.Len()) {
		return Point{}, ErrOutOfRange
	}
	line := b.lines.lineFor(offset)
	return Point{Line: line, Column: int(offset - b.lines.start(line))}, nil
}

// OffsetFor converts a line/column point to a byte offset. The column
// may equal the line length, addressing the line's newline (or the end
// of the buffer on the last line).
func (b *Buffer) OffsetFor(p Point) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, err := b.lineRangeLocked(p.Line)
	if err != nil {
		return 0, err
	}
	if p.Column < 0 || ByteOffset(p.Column) > r.Len() {
		return 0, ErrOutOfRange
	}
	return r.Start + ByteOffset(p.Column), nil
}

// Write Operations

// Insert inserts text at the given offset and returns the edit it
// performed. The offset is clamped to [0, Len]; inserted text is
// normalized to LF line endings.
func (b *Buffer) Insert(offset ByteOffset, text string) (Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 {
		offset = 0
	}
	if l := ByteOffset(b.rope.Len()); offset > l {
		offset = l
	}

	e := NewInsert(offset, normalizeNewlines(text))
	b.applyLocked(e)
	return e, nil
}

// Delete removes the text in the given range and returns the edit it
// performed. The range must satisfy 0 <= Start <= End <= Len or the
// call fails with ErrOutOfRange.
func (b *Buffer) Delete(r Range) (Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validRange(r) {
		return Edit{}, ErrOutOfRange
	}

	old := string(b.rope.Slice(int(r.Start), int(r.End)))
	e := NewDelete(r, old)
	b.applyLocked(e)
	return e, nil
}

// Replace substitutes the text in the given range and returns the edit
// it performed. The range must satisfy 0 <= Start <= End <= Len or the
// call fails with ErrOutOfRange.
func (b *Buffer) Replace(r Range, text string) (Edit, error) {
	return b.Apply(Edit{Range: r, NewText: text})
}

// Apply replaces the edit's range with its new text and returns the
// edit as applied: OldText filled in from the buffer, NewText
// normalized to LF line endings. The range must be valid against the
// current content or the call fails with ErrOutOfRange and the buffer
// is left untouched. The edit's OldText is not consulted; the buffer
// reads the authoritative old content itself, so a stale OldText
// cannot corrupt the line index.
func (b *Buffer) Apply(e Edit) (Edit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validRange(e.Range) {
		return Edit{}, ErrOutOfRange
	}

	e.OldText = string(b.rope.Slice(int(e.Range.Start), int(e.Range.End)))
	e.NewText = normalizeNewlines(e.NewText)
	b.applyLocked(e)
	return e, nil
}

// applyLocked performs the mutation described by a validated edit:
// rope update, line index splice, revision bump. Content and index
// change together or not at all.
func (b *Buffer) applyLocked(e Edit) {
	if !e.Range.IsEmpty() {
		b.rope.Remove(int(e.Range.Start), int(e.Range.End))
	}
	if len(e.NewText) > 0 {
		b.rope.Insert(int(e.Range.Start), []byte(e.NewText))
	}
	b.lines.update(e)
	b.revision++
}

func (b *Buffer) validRange(r Range) bool {
	return r.IsValid() && r.End <= ByteOffset(b.rope.Len())
}

// Buffer State

// Revision returns a counter incremented by every applied edit.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the serialization line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the serialization line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// Serialize renders the buffer content using the line ending style
// recorded at load.
func (b *Buffer) Serialize() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	text := string(b.rope.Value())
	if b.lineEnding == LineEndingLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", b.lineEnding.Sequence())
}
