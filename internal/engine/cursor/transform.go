package cursor

import "github.com/itzCozi/QNote-sub000/internal/engine/buffer"

// MapOffset returns where an offset lands after an edit.
//
// Rules:
//   - At or after the removed range's end: shift by the edit's delta.
//     An insertion exactly at the offset therefore pushes it right,
//     which is what a caret expects while typing.
//   - At or before the edit's start: unchanged.
//   - Inside the removed range: collapse to the edit's start, the
//     nearest surviving position.
func MapOffset(offset ByteOffset, e buffer.Edit) ByteOffset {
	switch {
	case e.Range.End <= offset:
		return offset + e.Delta()
	case offset <= e.Range.Start:
		return offset
	default:
		return e.Range.Start
	}
}

// MapThroughEdit remaps a selection through an edit. Anchor and head
// are transformed independently.
func MapThroughEdit(sel Selection, e buffer.Edit) Selection {
	return Selection{
		Anchor: MapOffset(sel.Anchor, e),
		Head:   MapOffset(sel.Head, e),
	}
}

// MapRange remaps a byte range through an edit, normalizing so that
// Start <= End holds afterwards.
func MapRange(r Range, e buffer.Edit) Range {
	start := MapOffset(r.Start, e)
	end := MapOffset(r.End, e)
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}
