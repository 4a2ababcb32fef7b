package buffer

import (
	"sort"
	"strings"
)

// lineIndex caches the byte offset of every line start. starts[0] is
// always 0; each subsequent entry is the offset just past a newline.
// The index is built once at buffer construction and afterwards only
// spliced and shifted per edit, never rebuilt from the full content.
type lineIndex struct {
	starts []ByteOffset
}

// newLineIndex builds the index for initial content. This is the only
// full scan the index ever performs.
func newLineIndex(text string) *lineIndex {
	starts := make([]ByteOffset, 1, 1+strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, ByteOffset(i)+1)
		}
	}
	return &lineIndex{starts: starts}
}

// count returns the number of lines. A buffer always has at least one
// line; a trailing newline opens a final empty line.
func (li *lineIndex) count() int {
	return len(li.starts)
}

// lineFor returns the index of the line containing offset. An offset
// equal to the buffer length belongs to the last line.
func (li *lineIndex) lineFor(offset ByteOffset) int {
	i := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
	return i - 1
}

// start returns the offset of the first byte of the given line.
func (li *lineIndex) start(line int) ByteOffset {
	return li.starts[line]
}

// update reconciles the index with an applied edit. When neither the
// removed nor the inserted text contains a newline the line structure is
// unchanged and later starts only shift by the length delta. Otherwise
// the entries for the edited span are spliced out and replaced by the
// starts the inserted text introduces, with the tail shifted. Both paths
// touch only the affected span plus the shift pass.
func (li *lineIndex) update(e Edit) {
	first := li.lineFor(e.Range.Start)
	delta := e.Delta()
	removedNL := strings.Count(e.OldText, "\n")
	insertedNL := strings.Count(e.NewText, "\n")

	if removedNL == 0 && insertedNL == 0 {
		if delta != 0 {
			for i := first + 1; i < len(li.starts); i++ {
				li.starts[i] += delta
			}
		}
		return
	}

	// Starts introduced by the inserted text.
	fresh := make([]ByteOffset, 0, insertedNL)
	for i := 0; i < len(e.NewText); i++ {
		if e.NewText[i] == '\n' {
			fresh = append(fresh, e.Range.Start+ByteOffset(i)+1)
		}
	}

	// The removed newlines owned exactly the entries in
	// (Range.Start, Range.End]: starts[first+1 : first+1+removedNL].
	tail := first + 1 + removedNL

	updated := make([]ByteOffset, 0, len(li.starts)-removedNL+len(fresh))
	updated = append(updated, li.starts[:first+1]...)
	updated = append(updated, fresh...)
	for _, s := range li.starts[tail:] {
		updated = append(updated, s+delta)
	}
	li.starts = updated
}
