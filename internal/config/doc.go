// Package config provides the configuration system for QNote.
//
// Settings live in a single optional TOML file. Values found there
// override the built-in defaults; everything else keeps its default, so
// a missing or empty file is always valid.
//
//	# ~/.config/qnote/config.toml
//	[editor]
//	tab_width = 4
//	coalesce_interval_ms = 1000
//	undo_limit = 1000
//	line_ending = "lf"
//
//	[search]
//	case_sensitive = false
//
//	[highlight]
//	grammar_dir = "~/.config/qnote/grammars"
//
//	[spell]
//	enabled = true
//	wordlist = "~/.config/qnote/words"
//
//	[notes]
//	dir = "~/notes"
//
// Loading goes through a FileSystem abstraction so tests can feed
// fixture files without touching the real disk.
package config
