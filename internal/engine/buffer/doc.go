// Package buffer provides the editable text store at the heart of the
// editor engine: a rope-backed byte sequence plus a line-start index kept
// consistent with the content across every edit.
//
// The buffer package provides:
//
//   - Efficient arbitrary-position edits through the underlying rope
//   - An Edit value describing each mutation (range, removed text,
//     inserted text) that inverts and round-trips exactly
//   - A line table maintained incrementally: an edit recomputes starts
//     only for the lines it touches and shifts the rest, never rebuilding
//     the whole index
//   - Coordinate conversion between byte offsets and line/column points
//   - Line ending style preservation for serialization
//   - Revision tracking for change detection
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello, World!")
//
//	edit, _ := buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	_, _ = buf.Apply(edit.Invert())        // back to "Hello, World!"
//
// The buffer knows nothing about undo or highlighting. Every mutating
// call returns the Edit it performed; undo recording, highlight
// invalidation, and selection remapping are independent consumers of
// that value, wired together by the owning document.
//
// Text is held internally with LF line endings regardless of the style
// recorded at load; Serialize renders the recorded style back out.
package buffer
