package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/document"
	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
	"github.com/itzCozi/QNote-sub000/internal/engine/search"
	"github.com/itzCozi/QNote-sub000/internal/notestore"
)

// List prints every note, newest modification first.
func (a *App) List(w io.Writer) error {
	notes, err := a.store.List()
	if err != nil {
		return err
	}
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s  %s\n", n.ID, n.ModifiedAt.Format("2006-01-02 15:04"), displayTitle(n))
	}
	return nil
}

// Create makes a new note and prints its ID.
func (a *App) Create(w io.Writer, title string) error {
	n, err := a.store.Create(title)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, n.ID)
	return nil
}

// Show prints a note's content.
func (a *App) Show(w io.Writer, id uuid.UUID) error {
	_, text, err := a.store.Load(id)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	if text != "" && text[len(text)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}

// Search prints every match of term across all notes in grep form:
// id:line:col followed by the matching line.
func (a *App) Search(w io.Writer, term string, opts search.Options) error {
	return a.eachDocument(func(note *notestore.Note, doc *document.Document) error {
		it, err := doc.FindAll(term, opts)
		if err != nil {
			return fmt.Errorf("searching %s: %w", note.ID, err)
		}
		for {
			m, ok := it.Next()
			if !ok {
				break
			}
			fmt.Fprintf(w, "%s:%s: %s\n", note.ID, position(doc, m.Range.Start), matchLine(doc, m.Range.Start))
		}
		return nil
	})
}

// Replace substitutes every match of term across all notes and saves
// the changed ones. With dryRun it only reports what would change.
func (a *App) Replace(w io.Writer, term, replacement string, opts search.Options, dryRun bool) error {
	return a.eachDocument(func(note *notestore.Note, doc *document.Document) error {
		count, err := doc.ReplaceAll(term, replacement, opts)
		if err != nil {
			return fmt.Errorf("replacing in %s: %w", note.ID, err)
		}
		if count == 0 {
			return nil
		}
		if dryRun {
			fmt.Fprintf(w, "%s  %s: would replace %d\n", note.ID, displayTitle(note), count)
			return nil
		}
		if err := doc.SaveTo(a.store); err != nil {
			return fmt.Errorf("saving %s: %w", note.ID, err)
		}
		fmt.Fprintf(w, "%s  %s: replaced %d\n", note.ID, displayTitle(note), count)
		return nil
	})
}

// Spell prints unknown words in the given notes, or in every note when
// none are given.
func (a *App) Spell(w io.Writer, ids []uuid.UUID) error {
	if !a.cfg.Spell.Enabled {
		return ErrSpellDisabled
	}

	check := func(note *notestore.Note, doc *document.Document) error {
		ranges, err := doc.Spell().Check(0, doc.Buffer().LineCount())
		if err != nil {
			return fmt.Errorf("checking %s: %w", note.ID, err)
		}
		for _, r := range ranges {
			word, err := doc.Buffer().Read(r)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s:%s: unknown word %q\n", note.ID, position(doc, r.Start), word)
		}
		return nil
	}

	if len(ids) == 0 {
		return a.eachDocument(check)
	}
	for _, id := range ids {
		note, doc, err := a.openDocument(id)
		if err != nil {
			return err
		}
		if err := check(note, doc); err != nil {
			return err
		}
	}
	return nil
}

// Watch prints external note changes until ctx ends.
func (a *App) Watch(ctx context.Context, w io.Writer) error {
	events, err := a.store.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		fmt.Fprintf(w, "%-6s %s\n", ev.Op, ev.NoteID)
	}
	return nil
}

// eachDocument opens every listed note as a document and applies fn.
// Notes that fail to decode are skipped.
func (a *App) eachDocument(fn func(*notestore.Note, *document.Document) error) error {
	notes, err := a.store.List()
	if err != nil {
		return err
	}
	for _, n := range notes {
		note, doc, err := a.openDocument(n.ID)
		if err != nil {
			if errors.Is(err, notestore.ErrBinaryContent) {
				continue
			}
			return err
		}
		if err := fn(note, doc); err != nil {
			return err
		}
	}
	return nil
}

func displayTitle(n *notestore.Note) string {
	if n.Title == "" {
		return "(untitled)"
	}
	return n.Title
}

// position renders a 1-based line:col for an offset.
func position(doc *document.Document, off buffer.ByteOffset) string {
	p, err := doc.Buffer().PositionFor(off)
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

func matchLine(doc *document.Document, off buffer.ByteOffset) string {
	p, err := doc.Buffer().PositionFor(off)
	if err != nil {
		return ""
	}
	line, err := doc.Buffer().LineText(p.Line)
	if err != nil {
		return ""
	}
	return line
}
