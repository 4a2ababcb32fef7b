package document

import (
	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
	"github.com/itzCozi/QNote-sub000/internal/engine/search"
)

// Find locates the next match for term starting at from, wrapping at
// the buffer edges, and makes it the active search's current match.
func (d *Document) Find(term string, from buffer.ByteOffset, opts search.Options) (search.Match, error) {
	m, err := d.finder.Find(term, from, opts)
	if err != nil {
		return search.Match{}, err
	}
	d.finds.Set(term, opts)
	d.finds.SetCurrent(m)
	return m, nil
}

// FindNext advances the active search to the next match, resuming
// past the current one. When the buffer changed since the last find
// the search resumes from the primary cursor instead.
func (d *Document) FindNext() (search.Match, error) {
	term := d.finds.LastTerm()
	if term == "" {
		return search.Match{}, ErrNoSearch
	}
	opts := d.finds.Options()

	from := d.Selection().Head
	if m, ok := d.finds.Current(); ok {
		if opts.Backward {
			from = m.Range.Start
		} else {
			from = m.Range.End
		}
	}

	m, err := d.finder.Find(term, from, opts)
	if err != nil {
		return search.Match{}, err
	}
	d.finds.SetCurrent(m)
	return m, nil
}

// FindAll returns an iterator over every match in the current content.
func (d *Document) FindAll(term string, opts search.Options) (*search.Iterator, error) {
	return d.finder.FindAll(term, opts)
}

// ReplaceAll replaces every match of term as a single undo step and
// returns the number of replacements performed. Matches are found and
// replaced sequentially against the live content, so a replacement
// containing the term does not loop.
func (d *Document) ReplaceAll(term, replacement string, opts search.Options) (int, error) {
	var count int
	err := d.Transaction(func() error {
		var err error
		count, err = d.finder.ReplaceAllPlan(term, replacement, opts, d.applyEdit)
		return err
	})
	return count, err
}

// Search returns the document's search session state.
func (d *Document) Search() *search.Session {
	return d.finds
}
