package app

import "errors"

var (
	// ErrSpellDisabled means spell checking is turned off in the
	// configuration.
	ErrSpellDisabled = errors.New("spell checking disabled in configuration")
)
