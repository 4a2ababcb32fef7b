// Package document wires the engine components into an editable
// document: one buffer plus the undo history, highlight engine, spell
// checker, cursor set, and search session that track it.
//
// Every mutation flows through a single path. The edit is applied to
// the buffer, recorded for undo, and then fanned out to each listener
// in a fixed order:
//
//	buffer -> history -> highlight -> spell -> cursors -> observers
//
// Undo and redo replay history-produced edits through the same fan-out
// so no listener can drift from the buffer, whatever the source of the
// change.
//
// Session collects open documents into a tab list and owns the state
// shared between them: the clipboard ring with its system bridge, the
// grammar registry, and the spell dictionary.
//
// Documents are safe for concurrent use. Observer callbacks run
// synchronously on the mutating goroutine while the document lock is
// held; they must not call back into the document. The edit they
// receive plus the component accessors cover what a renderer needs.
package document
