package document

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
	"github.com/itzCozi/QNote-sub000/internal/engine/cursor"
	"github.com/itzCozi/QNote-sub000/internal/engine/highlight"
	"github.com/itzCozi/QNote-sub000/internal/engine/history"
	"github.com/itzCozi/QNote-sub000/internal/engine/search"
	"github.com/itzCozi/QNote-sub000/internal/engine/spell"
)

// EditObserver is notified after each edit is applied to a document,
// including edits replayed by undo and redo.
type EditObserver interface {
	OnEdit(e buffer.Edit)
}

// ContentStore persists serialized document content under a note ID.
// notestore.Store satisfies it.
type ContentStore interface {
	Save(id uuid.UUID, content string) error
}

// Document is the editing unit behind one tab: a buffer together with
// the undo history, highlight engine, spell checker, cursor set, and
// search state that track it.
type Document struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	history *history.History
	hl      *highlight.Engine
	spell   *spell.Checker
	finder  *search.Engine
	finds   *search.Session

	noteID        uuid.UUID
	savedRevision uint64
	observers     []EditObserver

	// Configuration captured by options before components exist.
	initText   string
	grammar    *highlight.Grammar
	lineEnding buffer.LineEnding
	tabWidth   int
	undoLimit  int
	coalesce   time.Duration
	clock      func() time.Time
	dict       *spell.Dictionary
}

// New creates a document with the given options.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}

	d.buf = buffer.NewFromString(d.initText,
		buffer.WithLineEnding(d.lineEnding),
		buffer.WithTabWidth(d.tabWidth),
	)
	d.cursors = cursor.NewCursorSet(cursor.NewCaret(0))

	histOpts := []history.Option{
		history.WithLimit(d.undoLimit),
		history.WithCoalesceInterval(d.coalesce),
		history.WithClock(d.clock),
	}
	d.history = history.New(histOpts...)

	if d.grammar == nil {
		d.grammar = highlight.Plain()
	}
	d.hl = highlight.NewEngine(d.buf, d.grammar)

	if d.dict == nil {
		d.dict = spell.NewDictionary()
	}
	d.spell = spell.NewChecker(d.buf, d.hl, d.dict)

	d.finder = search.NewEngine(d.buf)
	d.finds = search.NewSession(d.buf)
	d.savedRevision = d.buf.Revision()

	return d
}

// AddObserver registers an observer for applied edits.
func (d *Document) AddObserver(o EditObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Write Operations

// Insert inserts text at the given offset as an undoable edit.
func (d *Document) Insert(at buffer.ByteOffset, text string) error {
	if text == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	e, err := d.buf.Insert(at, text)
	if err != nil {
		return err
	}
	d.recordLocked(e)
	return nil
}

// Delete removes the text in the given range as an undoable edit.
func (d *Document) Delete(r buffer.Range) error {
	if r.IsEmpty() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	e, err := d.buf.Delete(r)
	if err != nil {
		return err
	}
	d.recordLocked(e)
	return nil
}

// Replace substitutes the text in the given range as an undoable edit.
func (d *Document) Replace(r buffer.Range, text string) error {
	if r.IsEmpty() && text == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	e, err := d.buf.Replace(r, text)
	if err != nil {
		return err
	}
	d.recordLocked(e)
	return nil
}

// TypeText inserts text at every cursor, replacing selected content.
// With a single cursor the edit coalesces with adjacent typing; with
// multiple cursors all insertions form one undo step. Edits apply
// highest offset first so pending positions stay valid.
func (d *Document) TypeText(text string) error {
	sels := d.Selections()

	if len(sels) == 1 {
		return d.typeAt(sels[0], text)
	}
	return d.Transaction(func() error {
		for i := len(sels) - 1; i >= 0; i-- {
			if err := d.typeAt(sels[i], text); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Document) typeAt(sel cursor.Selection, text string) error {
	if sel.IsEmpty() {
		return d.Insert(sel.Head, text)
	}
	return d.Replace(sel.Range(), text)
}

// applyEdit applies one raw edit through the full record path. The
// replace-all planner uses it as its Applier.
func (d *Document) applyEdit(e buffer.Edit) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	applied, err := d.buf.Apply(e)
	if err != nil {
		return err
	}
	d.recordLocked(applied)
	return nil
}

// recordLocked records a just-applied edit for undo and fans it out to
// the listeners.
func (d *Document) recordLocked(e buffer.Edit) {
	d.history.Record(e)
	d.fanOutLocked(e)
}

// fanOutLocked notifies every listener of an applied edit without
// recording it. Undo and redo replay through here so history-produced
// edits do not disturb the history stacks.
func (d *Document) fanOutLocked(e buffer.Edit) {
	d.hl.OnEdit(e)
	d.spell.OnEdit(e)
	d.cursors.MapThroughEdit(e)
	for _, o := range d.observers {
		o.OnEdit(e)
	}
}

// Undo and Redo

// Undo reverts the most recent undo step. It reports whether a step
// was undone.
func (d *Document) Undo() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	edits, ok := d.history.Undo()
	if !ok {
		return false, nil
	}
	if err := d.replayLocked(edits); err != nil {
		return false, err
	}
	return true, nil
}

// Redo re-applies the most recently undone step. It reports whether a
// step was redone.
func (d *Document) Redo() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	edits, ok := d.history.Redo()
	if !ok {
		return false, nil
	}
	if err := d.replayLocked(edits); err != nil {
		return false, err
	}
	return true, nil
}

// replayLocked applies history-produced edits to the buffer and fans
// them out. History has already moved the step between its stacks, so
// a failure here means document and history have diverged.
func (d *Document) replayLocked(edits []buffer.Edit) error {
	for _, e := range edits {
		applied, err := d.buf.Apply(e)
		if err != nil {
			return fmt.Errorf("replay edit at offset %d: %w", e.Range.Start, err)
		}
		d.fanOutLocked(applied)
	}
	return nil
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// UndoCount returns the number of available undo steps.
func (d *Document) UndoCount() int { return d.history.UndoCount() }

// RedoCount returns the number of available redo steps.
func (d *Document) RedoCount() int { return d.history.RedoCount() }

// Transaction groups every edit made inside fn into a single undo
// step. Nested calls join the outermost transaction. The error from fn
// is returned unchanged; edits applied before a failure remain applied
// and are committed with the rest.
func (d *Document) Transaction(fn func() error) error {
	d.history.BeginTransaction()
	defer d.history.EndTransaction()
	return fn()
}

// Selections

// SetSelection replaces every cursor with the given selection. Moving
// the cursor breaks undo coalescing, so typing after a jump starts a
// new step.
func (d *Document) SetSelection(sel cursor.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors.Set(sel)
	d.history.BreakCoalescing()
}

// AddSelection adds a cursor and makes it primary.
func (d *Document) AddSelection(sel cursor.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors.Add(sel)
	d.history.BreakCoalescing()
}

// Selection returns the primary selection.
func (d *Document) Selection() cursor.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursors.Primary()
}

// Selections returns every selection ordered by position.
func (d *Document) Selections() []cursor.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursors.All()
}

// SelectedText returns the primary selection's content, or "" for a
// caret.
func (d *Document) SelectedText() (string, error) {
	sel := d.Selection()
	if sel.IsEmpty() {
		return "", nil
	}
	return d.buf.Read(sel.Range())
}

// Content and Components

// Text returns the full buffer content with LF line endings.
func (d *Document) Text() string { return d.buf.Text() }

// Serialize returns the content rendered with the document's recorded
// line ending style.
func (d *Document) Serialize() string { return d.buf.Serialize() }

// Buffer returns the underlying text buffer.
func (d *Document) Buffer() *buffer.Buffer { return d.buf }

// Highlight returns the document's highlight engine.
func (d *Document) Highlight() *highlight.Engine { return d.hl }

// Spell returns the document's spell checker.
func (d *Document) Spell() *spell.Checker { return d.spell }

// Grammar returns the active highlight grammar.
func (d *Document) Grammar() *highlight.Grammar { return d.hl.Grammar() }

// SetGrammar switches the highlight grammar and invalidates the
// caches derived from it.
func (d *Document) SetGrammar(g *highlight.Grammar) {
	d.hl.SetGrammar(g)
	d.spell.InvalidateAll()
}

// Note Binding

// NoteID returns the note this document was opened from, or uuid.Nil.
func (d *Document) NoteID() uuid.UUID { return d.noteID }

// SaveTo writes the serialized content to the store under the
// document's note ID and marks the document unmodified.
func (d *Document) SaveTo(store ContentStore) error {
	if d.noteID == uuid.Nil {
		return ErrNoNote
	}
	if err := store.Save(d.noteID, d.Serialize()); err != nil {
		return err
	}
	d.MarkSaved()
	return nil
}

// Modified reports whether the content changed since the last save.
// Undoing back past the save point still counts as modified; the
// revision only moves forward.
func (d *Document) Modified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.Revision() != d.savedRevision
}

// MarkSaved pins the current revision as the saved state.
func (d *Document) MarkSaved() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.savedRevision = d.buf.Revision()
}
