package document

import (
	"errors"
	"reflect"
	"testing"

	"github.com/itzCozi/QNote-sub000/internal/engine/cursor"
)

type fakeBridge struct {
	text   string
	fail   bool
	writes []string
}

func (f *fakeBridge) Read() (string, error) {
	if f.fail {
		return "", errors.New("no system clipboard")
	}
	return f.text, nil
}

func (f *fakeBridge) Write(text string) error {
	if f.fail {
		return errors.New("no system clipboard")
	}
	f.text = text
	f.writes = append(f.writes, text)
	return nil
}

func TestOpenActivatesRightmost(t *testing.T) {
	s := NewSession()

	a := s.OpenBlank()
	b := s.OpenText("x.go", "package x")

	if s.Count() != 2 {
		t.Fatalf("count = %d, want 2", s.Count())
	}
	if s.Active() != b || s.ActiveIndex() != 1 {
		t.Errorf("active = index %d, want the last opened tab", s.ActiveIndex())
	}
	if docs := s.Documents(); docs[0] != a || docs[1] != b {
		t.Error("documents must be in tab order")
	}
}

func TestOpenTextPicksGrammarFromPath(t *testing.T) {
	s := NewSession()

	tests := []struct {
		path string
		want string
	}{
		{"notes.md", "markdown"},
		{"main.go", "go"},
		{"misc.xyz", "plain"},
	}
	for _, tt := range tests {
		d := s.OpenText(tt.path, "")
		if got := d.Grammar().Name; got != tt.want {
			t.Errorf("grammar for %s = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCloseActiveActivatesLeftNeighbor(t *testing.T) {
	s := NewSession()
	s.OpenBlank()
	b := s.OpenBlank()
	s.OpenBlank()

	if !s.Close(2) {
		t.Fatal("close failed")
	}
	if s.Active() != b || s.ActiveIndex() != 1 {
		t.Errorf("active index = %d, want left neighbor at 1", s.ActiveIndex())
	}
}

func TestCloseBeforeActiveKeepsDocument(t *testing.T) {
	s := NewSession()
	s.OpenBlank()
	s.OpenBlank()
	c := s.OpenBlank()

	if !s.Close(0) {
		t.Fatal("close failed")
	}
	if s.Active() != c || s.ActiveIndex() != 1 {
		t.Errorf("active = index %d, want the same document at 1", s.ActiveIndex())
	}
}

func TestCloseLeftmostActive(t *testing.T) {
	s := NewSession()
	s.OpenBlank()
	b := s.OpenBlank()
	s.OpenBlank()
	s.SetActive(0)

	if !s.Close(0) {
		t.Fatal("close failed")
	}
	if s.Active() != b || s.ActiveIndex() != 0 {
		t.Errorf("active = index %d, want next tab at 0", s.ActiveIndex())
	}
}

func TestCloseLastTab(t *testing.T) {
	s := NewSession()
	s.OpenBlank()

	if !s.Close(0) {
		t.Fatal("close failed")
	}
	if s.Count() != 0 || s.Active() != nil || s.ActiveIndex() != -1 {
		t.Errorf("session not empty: count %d active index %d", s.Count(), s.ActiveIndex())
	}
	if s.Close(0) {
		t.Error("closing an empty session must report false")
	}
}

func TestNextPrevWrap(t *testing.T) {
	s := NewSession()
	s.OpenBlank()
	s.OpenBlank()
	s.OpenBlank()

	s.Next()
	if s.ActiveIndex() != 0 {
		t.Errorf("next from last = %d, want 0", s.ActiveIndex())
	}
	s.Prev()
	if s.ActiveIndex() != 2 {
		t.Errorf("prev from first = %d, want 2", s.ActiveIndex())
	}
}

func TestCopyPasteThroughBridge(t *testing.T) {
	fb := &fakeBridge{}
	s := NewSession(WithBridge(fb))

	s.Copy("one")
	s.Copy("two")

	if !reflect.DeepEqual(fb.writes, []string{"one", "two"}) {
		t.Errorf("bridge writes = %v", fb.writes)
	}
	if text, ok := s.Paste(); !ok || text != "two" {
		t.Errorf("paste = %q, %v, want %q", text, ok, "two")
	}

	// Content copied in another program lands at the front of the ring.
	fb.text = "foreign"
	if text, ok := s.Paste(); !ok || text != "foreign" {
		t.Errorf("paste = %q, %v, want %q", text, ok, "foreign")
	}
	if text, ok := s.PastePrevious(); !ok || text != "two" {
		t.Errorf("paste previous = %q, %v, want %q", text, ok, "two")
	}
}

func TestClipboardDegradesWithoutBridge(t *testing.T) {
	fb := &fakeBridge{fail: true}
	s := NewSession(WithBridge(fb))

	s.Copy("x")
	if text, ok := s.Paste(); !ok || text != "x" {
		t.Errorf("paste = %q, %v, want ring fallback %q", text, ok, "x")
	}
}

func TestCopySelection(t *testing.T) {
	s := NewSession()
	d := s.OpenText("a.txt", "hello world")
	d.SetSelection(cursor.NewSelection(0, 5))

	if !s.CopySelection() {
		t.Fatal("copy selection failed")
	}
	if text, ok := s.Ring().Current(); !ok || text != "hello" {
		t.Errorf("ring current = %q, %v", text, ok)
	}

	d.SetSelection(cursor.NewCaret(0))
	if s.CopySelection() {
		t.Error("copying a caret must report false")
	}
}

func TestLearnSharedAcrossDocuments(t *testing.T) {
	s := NewSession()
	d1 := s.OpenText("a.txt", "qzxword here")
	d2 := s.OpenText("b.txt", "qzxword there")

	for i, d := range []*Document{d1, d2} {
		flags, err := d.Spell().Check(0, d.Buffer().LineCount())
		if err != nil {
			t.Fatalf("check doc %d: %v", i, err)
		}
		if len(flags) != 1 {
			t.Fatalf("doc %d flags = %v, want one", i, flags)
		}
	}

	s.Learn("qzxword")

	for i, d := range []*Document{d1, d2} {
		flags, err := d.Spell().Check(0, d.Buffer().LineCount())
		if err != nil {
			t.Fatalf("check doc %d: %v", i, err)
		}
		if len(flags) != 0 {
			t.Errorf("doc %d flags after learn = %v, want none", i, flags)
		}
	}
}
