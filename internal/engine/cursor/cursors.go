package cursor

import (
	"sort"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// CursorSet holds one or more selections with a designated primary.
// Selections are kept sorted by start position with overlapping or
// touching ones merged.
type CursorSet struct {
	selections []Selection
	primary    int
}

// NewCursorSet creates a cursor set with a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{
		selections: []Selection{initial},
		primary:    0,
	}
}

// Primary returns the primary selection.
func (cs *CursorSet) Primary() Selection {
	return cs.selections[cs.primary]
}

// All returns a copy of all selections in order.
func (cs *CursorSet) All() []Selection {
	out := make([]Selection, len(cs.selections))
	copy(out, cs.selections)
	return out
}

// Count returns the number of selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// Add inserts an additional selection and makes it primary.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.primary = len(cs.selections) - 1
	cs.normalize()
}

// Set replaces all selections with a single one.
func (cs *CursorSet) Set(sel Selection) {
	cs.selections = cs.selections[:0]
	cs.selections = append(cs.selections, sel)
	cs.primary = 0
}

// CollapseAll reduces every selection to a caret at its head.
func (cs *CursorSet) CollapseAll() {
	for i := range cs.selections {
		cs.selections[i] = cs.selections[i].Collapse()
	}
	cs.normalize()
}

// MapThroughEdit remaps every selection through an edit.
func (cs *CursorSet) MapThroughEdit(e buffer.Edit) {
	for i := range cs.selections {
		cs.selections[i] = MapThroughEdit(cs.selections[i], e)
	}
	cs.normalize()
}

// normalize sorts selections and merges overlapping or touching ones,
// keeping track of where the primary ends up.
func (cs *CursorSet) normalize() {
	if len(cs.selections) <= 1 {
		cs.primary = 0
		return
	}

	primarySel := cs.selections[cs.primary]

	sort.SliceStable(cs.selections, func(i, j int) bool {
		si, sj := cs.selections[i].Start(), cs.selections[j].Start()
		if si != sj {
			return si < sj
		}
		return cs.selections[i].End() > cs.selections[j].End()
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Start() <= last.End() {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	cs.selections = merged

	cs.primary = 0
	for i, sel := range cs.selections {
		if sel.Contains(primarySel.Start()) || sel == primarySel {
			cs.primary = i
			break
		}
	}
}
