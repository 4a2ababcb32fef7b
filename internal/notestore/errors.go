package notestore

import "errors"

var (
	// ErrNoteNotFound is returned when no note file exists for an ID.
	ErrNoteNotFound = errors.New("note not found")

	// ErrBinaryContent is returned when a note file does not contain
	// text.
	ErrBinaryContent = errors.New("binary content")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("note store closed")
)
