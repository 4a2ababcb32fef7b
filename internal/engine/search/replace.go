package search

import (
	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// Applier applies one replacement edit to the document. The document
// wraps a replace-all walk in a transaction so the whole run undoes as
// one step.
type Applier func(buffer.Edit) error

// Replace builds the edit that substitutes the match with replacement.
// The replacement is literal text.
func (e *Engine) Replace(m Match, replacement string) buffer.Edit {
	return buffer.Edit{
		Range:   m.Range,
		OldText: m.Text,
		NewText: replacement,
	}
}

// ReplaceAllPlan replaces every match of term, finding each successive
// match against the buffer as already mutated by the earlier
// replacements. Offsets handed to apply are therefore valid at
// application time. It returns the number of replacements made.
//
// The scan resumes after each inserted replacement, so a replacement
// containing the term does not loop.
func (e *Engine) ReplaceAllPlan(term, replacement string, opts Options, apply Applier) (int, error) {
	re, err := compile(term, opts)
	if err != nil {
		return 0, err
	}

	count := 0
	pos := 0
	for {
		text := e.buf.Text()
		if pos > len(text) {
			break
		}
		ms, me, ok := firstMatch(re, text, pos, len(text), opts)
		if !ok {
			break
		}

		ed := buffer.Edit{
			Range:   buffer.NewRange(buffer.ByteOffset(ms), buffer.ByteOffset(me)),
			OldText: text[ms:me],
			NewText: replacement,
		}
		if err := apply(ed); err != nil {
			return count, err
		}
		count++

		pos = ms + len(replacement)
		if me == ms {
			if ms >= len(text) {
				break
			}
			pos += runeAdvance(text, ms)
		}
	}
	return count, nil
}
