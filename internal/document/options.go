package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
	"github.com/itzCozi/QNote-sub000/internal/engine/highlight"
	"github.com/itzCozi/QNote-sub000/internal/engine/spell"
)

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithText sets the initial content.
func WithText(text string) Option {
	return func(d *Document) {
		d.initText = text
	}
}

// WithGrammar sets the highlight grammar. Defaults to plain text.
func WithGrammar(g *highlight.Grammar) Option {
	return func(d *Document) {
		d.grammar = g
	}
}

// WithLineEnding sets the serialization line ending style.
func WithLineEnding(le buffer.LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
	}
}

// WithTabWidth sets the tab width used for visual column math.
func WithTabWidth(width int) Option {
	return func(d *Document) {
		d.tabWidth = width
	}
}

// WithUndoLimit caps the number of retained undo steps.
func WithUndoLimit(n int) Option {
	return func(d *Document) {
		d.undoLimit = n
	}
}

// WithCoalesceInterval sets the maximum pause between keystrokes that
// still merge into one undo step.
func WithCoalesceInterval(interval time.Duration) Option {
	return func(d *Document) {
		d.coalesce = interval
	}
}

// WithClock injects the history's time source for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Document) {
		d.clock = now
	}
}

// WithDictionary shares a spell dictionary with other documents.
func WithDictionary(dict *spell.Dictionary) Option {
	return func(d *Document) {
		d.dict = dict
	}
}

// WithNoteID binds the document to a stored note.
func WithNoteID(id uuid.UUID) Option {
	return func(d *Document) {
		d.noteID = id
	}
}
