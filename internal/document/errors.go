package document

import "errors"

var (
	// ErrNoNote is returned when saving a document that is not bound
	// to a note.
	ErrNoNote = errors.New("document not bound to a note")

	// ErrNoSearch is returned by FindNext when no search is active.
	ErrNoSearch = errors.New("no active search")
)
