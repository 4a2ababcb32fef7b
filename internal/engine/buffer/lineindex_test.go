package buffer

import "testing"

func lineStarts(li *lineIndex) []ByteOffset {
	out := make([]ByteOffset, len(li.starts))
	copy(out, li.starts)
	return out
}

func sameStarts(a, b []ByteOffset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewLineIndex(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ByteOffset
	}{
		{"empty", "", []ByteOffset{0}},
		{"single line", "abc", []ByteOffset{0}},
		{"two lines", "ab\ncd", []ByteOffset{0, 3}},
		{"trailing newline", "ab\n", []ByteOffset{0, 3}},
		{"blank lines", "\n\n", []ByteOffset{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := newLineIndex(tt.text)
			if got := lineStarts(li); !sameStarts(got, tt.want) {
				t.Errorf("starts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineIndexUpdateShiftOnly(t *testing.T) {
	li := newLineIndex("aa\nbb\ncc")

	// Insert "XY" inside line 0: no structure change, later lines shift.
	li.update(Edit{Range: NewRange(1, 1), NewText: "XY"})
	if got := lineStarts(li); !sameStarts(got, []ByteOffset{0, 5, 8}) {
		t.Errorf("starts after insert = %v", got)
	}

	// Delete one byte from line 1: lines after it shift back.
	li.update(Edit{Range: NewRange(6, 7), OldText: "b"})
	if got := lineStarts(li); !sameStarts(got, []ByteOffset{0, 5, 7}) {
		t.Errorf("starts after delete = %v", got)
	}
}

func TestLineIndexUpdateSplice(t *testing.T) {
	li := newLineIndex("aa\nbb\ncc")

	// Replace "a\nb" (offsets 1..4) with "X\nY\nZ": one newline becomes two.
	li.update(Edit{Range: NewRange(1, 4), OldText: "a\nb", NewText: "X\nY\nZ"})
	if got := lineStarts(li); !sameStarts(got, []ByteOffset{0, 3, 5, 8}) {
		t.Errorf("starts after replace = %v", got)
	}
}

func TestLineIndexUpdateRemovesLines(t *testing.T) {
	li := newLineIndex("a\nb\nc\nd")

	// Delete "b\nc\n" (offsets 2..6): two line starts disappear.
	li.update(Edit{Range: NewRange(2, 6), OldText: "b\nc\n"})
	if got := lineStarts(li); !sameStarts(got, []ByteOffset{0, 2}) {
		t.Errorf("starts after line removal = %v", got)
	}
}

func TestLineIndexLineFor(t *testing.T) {
	li := newLineIndex("ab\ncd\n")

	tests := []struct {
		offset ByteOffset
		want   int
	}{
		{0, 0},
		{2, 0}, // the newline belongs to its line
		{3, 1},
		{5, 1},
		{6, 2}, // buffer end on the empty last line
	}

	for _, tt := range tests {
		if got := li.lineFor(tt.offset); got != tt.want {
			t.Errorf("lineFor(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
