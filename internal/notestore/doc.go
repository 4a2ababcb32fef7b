// Package notestore persists notes as files in a directory, one file
// per note named by its UUID.
//
// Loading detects the file's encoding from its byte order mark,
// decodes UTF-16 variants to UTF-8, records the line ending style, and
// hands back LF-normalized text; binary content is rejected. Saving
// re-encodes with the stored encoding and writes through a temp file
// rename so a crash never leaves a half-written note.
//
// Watch streams create, write, and remove events for note files
// changed by other programs.
package notestore
