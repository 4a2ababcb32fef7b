package buffer

import "fmt"

// Edit is the atomic description of a buffer mutation: the range that was
// replaced, the text that occupied it, and the text that replaced it.
// Edits are the unit of undo recording and of highlight invalidation.
//
// Only Range and NewText drive an application; OldText records what the
// range held before the edit so that Invert can reconstruct it.
type Edit struct {
	Range   Range  // Pre-edit range covering OldText
	OldText string // Text removed by the edit
	NewText string // Text inserted in its place
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{
		Range:   Range{Start: offset, End: offset},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes the given text at a range.
func NewDelete(r Range, old string) Edit {
	return Edit{Range: r, OldText: old}
}

// NewRange returns the range the replacement text occupies after the
// edit has been applied.
func (e Edit) NewRange() Range {
	return Range{
		Start: e.Range.Start,
		End:   e.Range.Start + ByteOffset(len(e.NewText)),
	}
}

// Invert returns the edit that undoes this one. Applying an edit and
// then its inverse restores the original content exactly.
func (e Edit) Invert() Edit {
	return Edit{
		Range:   e.NewRange(),
		OldText: e.NewText,
		NewText: e.OldText,
	}
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.IsInsert() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.IsDelete() {
		return fmt.Sprintf("Delete%s %q", e.Range.String(), e.OldText)
	}
	return fmt.Sprintf("Replace%s %q with %q", e.Range.String(), e.OldText, e.NewText)
}
