package search

import (
	"errors"
	"testing"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

func TestFindForwardWithWrap(t *testing.T) {
	b := buffer.NewFromString("abcabc")
	e := NewEngine(b)

	m, err := e.Find("a", 1, Options{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Range.Start != 3 || m.Wrapped {
		t.Errorf("from 1: match at %d (wrapped=%v), want 3 unwrapped", m.Range.Start, m.Wrapped)
	}

	m, err = e.Find("a", 4, Options{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Range.Start != 0 || !m.Wrapped {
		t.Errorf("from 4: match at %d (wrapped=%v), want 0 wrapped", m.Range.Start, m.Wrapped)
	}
}

func TestFindBackward(t *testing.T) {
	b := buffer.NewFromString("abcabc")
	e := NewEngine(b)

	m, err := e.Find("a", 4, Options{Backward: true})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Range.Start != 3 || m.Wrapped {
		t.Errorf("backward from 4: match at %d (wrapped=%v), want 3 unwrapped", m.Range.Start, m.Wrapped)
	}

	m, err = e.Find("a", 0, Options{Backward: true})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Range.Start != 3 || !m.Wrapped {
		t.Errorf("backward from 0: match at %d (wrapped=%v), want 3 wrapped", m.Range.Start, m.Wrapped)
	}
}

func TestFindCaseSensitivity(t *testing.T) {
	b := buffer.NewFromString("Hello hello")
	e := NewEngine(b)

	m, err := e.Find("hello", 0, Options{})
	if err != nil || m.Range.Start != 0 {
		t.Errorf("case-insensitive: match = %+v, err = %v, want start 0", m, err)
	}

	m, err = e.Find("hello", 0, Options{CaseSensitive: true})
	if err != nil || m.Range.Start != 6 {
		t.Errorf("case-sensitive: match = %+v, err = %v, want start 6", m, err)
	}
}

func TestFindRegex(t *testing.T) {
	b := buffer.NewFromString("a 12 b 345")
	e := NewEngine(b)

	m, err := e.Find(`\d+`, 0, Options{Regex: true})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Range.Start != 2 || m.Range.End != 4 || m.Text != "12" {
		t.Errorf("match = %+v, want [2,4) %q", m, "12")
	}

	// Without Regex the term is literal.
	if _, err := e.Find(`\d+`, 0, Options{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("literal metacharacters must not match, err = %v", err)
	}

	if _, err := e.Find("(", 0, Options{Regex: true}); !errors.Is(err, ErrInvalidRegex) {
		t.Errorf("malformed pattern err = %v, want ErrInvalidRegex", err)
	}
}

func TestFindNotFound(t *testing.T) {
	b := buffer.NewFromString("abc")
	e := NewEngine(b)

	if _, err := e.Find("zz", 0, Options{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWholeWord(t *testing.T) {
	// "cat" appears standalone, inside "catalog", inside "cat's"
	// (one word under Unicode segmentation), and inside "scat".
	b := buffer.NewFromString("cat catalog cat's scat")
	e := NewEngine(b)

	it, err := e.FindAll("cat", Options{WholeWord: true})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}

	m, ok := it.Next()
	if !ok || m.Range.Start != 0 || m.Range.End != 3 {
		t.Errorf("first whole-word match = %+v (ok=%v), want [0,3)", m, ok)
	}
	if m, ok := it.Next(); ok {
		t.Errorf("unexpected extra whole-word match %+v", m)
	}
}

func TestWholeWordWrap(t *testing.T) {
	b := buffer.NewFromString("cat catalog")
	e := NewEngine(b)

	m, err := e.Find("cat", 1, Options{WholeWord: true})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Range.Start != 0 || !m.Wrapped {
		t.Errorf("match = %+v, want wrapped [0,3)", m)
	}
}

func TestWordBoundaryOverride(t *testing.T) {
	b := buffer.NewFromString("xcatx")
	e := NewEngine(b)

	opts := Options{
		WholeWord: true,
		WordBoundary: func(text string, start, end int) bool {
			return true
		},
	}
	m, err := e.Find("cat", 0, opts)
	if err != nil || m.Range.Start != 1 {
		t.Errorf("override should accept any span: match = %+v, err = %v", m, err)
	}
}

func TestFindAllIterator(t *testing.T) {
	b := buffer.NewFromString("abab ab")
	e := NewEngine(b)

	it, err := e.FindAll("ab", Options{})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}

	var starts []buffer.ByteOffset
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		starts = append(starts, m.Range.Start)
	}
	want := []buffer.ByteOffset{0, 2, 5}
	if len(starts) != len(want) {
		t.Fatalf("starts = %v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("starts = %v, want %v", starts, want)
			break
		}
	}

	// Reset rescans from the top.
	it.Reset()
	if m, ok := it.Next(); !ok || m.Range.Start != 0 {
		t.Errorf("after reset: match = %+v (ok=%v)", m, ok)
	}
}

func TestFindAllEmptyMatchTerminates(t *testing.T) {
	b := buffer.NewFromString("ab")
	e := NewEngine(b)

	it, err := e.FindAll("x*", Options{Regex: true})
	if err != nil {
		t.Fatalf("find all: %v", err)
	}

	count := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
		if count > 10 {
			t.Fatal("iterator did not terminate on empty matches")
		}
	}
	if count != 2 {
		t.Errorf("empty-match count = %d, want 2", count)
	}
}

func TestSessionInvalidation(t *testing.T) {
	b := buffer.NewFromString("one two")
	e := NewEngine(b)
	s := NewSession(b)

	m, err := e.Find("two", 0, Options{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	s.Set("two", Options{})
	s.SetCurrent(m)

	if got, ok := s.Current(); !ok || got.Range != m.Range {
		t.Fatalf("current = %+v (ok=%v)", got, ok)
	}
	if s.LastTerm() != "two" {
		t.Errorf("last term = %q", s.LastTerm())
	}

	if _, err := b.Insert(0, "x"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Error("current match must go stale when the buffer changes")
	}
	if s.LastTerm() != "two" {
		t.Error("the term survives buffer changes; only the match goes stale")
	}
}
