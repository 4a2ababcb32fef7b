package cursor

import (
	"testing"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

func TestSelectionBasics(t *testing.T) {
	sel := NewSelection(5, 2)

	if sel.Start() != 2 || sel.End() != 5 {
		t.Errorf("Start/End = %d/%d, want 2/5", sel.Start(), sel.End())
	}
	if sel.Len() != 3 {
		t.Errorf("Len = %d, want 3", sel.Len())
	}
	if sel.IsForward() {
		t.Error("head before anchor must be backward")
	}
	if sel.Range() != buffer.NewRange(2, 5) {
		t.Errorf("Range = %v, want [2:5)", sel.Range())
	}

	caret := NewCaret(7)
	if !caret.IsEmpty() {
		t.Error("caret must be empty")
	}
}

func TestCursorSetMergesOverlapping(t *testing.T) {
	cs := NewCursorSet(NewSelection(0, 4))
	cs.Add(NewSelection(3, 8))

	if cs.Count() != 1 {
		t.Fatalf("expected merged single selection, got %d", cs.Count())
	}
	if r := cs.Primary().Range(); r != buffer.NewRange(0, 8) {
		t.Errorf("merged range = %v, want [0:8)", r)
	}
}

func TestCursorSetMergesTouching(t *testing.T) {
	cs := NewCursorSet(NewSelection(0, 3))
	cs.Add(NewSelection(3, 6))

	if cs.Count() != 1 {
		t.Fatalf("expected merged single selection, got %d", cs.Count())
	}
}

func TestCursorSetKeepsDisjoint(t *testing.T) {
	cs := NewCursorSet(NewCaret(1))
	cs.Add(NewCaret(5))
	cs.Add(NewCaret(9))

	if cs.Count() != 3 {
		t.Fatalf("expected 3 selections, got %d", cs.Count())
	}

	all := cs.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Start() > all[i].Start() {
			t.Error("selections must be sorted by start")
		}
	}
}

func TestCursorSetMapThroughEdit(t *testing.T) {
	cs := NewCursorSet(NewCaret(2))
	cs.Add(NewCaret(8))

	cs.MapThroughEdit(buffer.NewInsert(4, "xy"))

	all := cs.All()
	if all[0].Head != 2 || all[1].Head != 10 {
		t.Errorf("carets = %d, %d; want 2, 10", all[0].Head, all[1].Head)
	}
}

func TestCursorSetCollapseAll(t *testing.T) {
	cs := NewCursorSet(NewSelection(0, 4))
	cs.Add(NewSelection(6, 9))

	cs.CollapseAll()

	for _, sel := range cs.All() {
		if !sel.IsEmpty() {
			t.Errorf("selection %v not collapsed", sel)
		}
	}
}
