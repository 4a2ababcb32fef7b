// Package history records buffer edits and turns them back into inverse
// edits on demand. It never mutates a buffer itself: Undo and Redo hand
// the caller the edits to apply, preserving the rule that only the
// owning document writes to the buffer.
//
// Consecutive single-rune insertions at adjacent offsets coalesce into
// one undo step while they arrive within the configured interval, so
// typing a word undoes as a word. Transactions group arbitrary edit
// sequences into a single atomic step.
package history
