// Package highlight provides incremental syntax highlighting over a
// text buffer.
//
// Tokenization is a finite-state scan of one line at a time, driven by
// a Grammar supplied as data. The scanner state at the end of each line
// is cached; an edit dirties only the lines it touches, and
// retokenization propagates downward exactly until a line's end state
// matches the cached one again. Highlighting work is therefore bounded
// by the edit and its propagation tail, never by document size.
package highlight
