package notestore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// DefaultExtension is the file extension for note files.
const DefaultExtension = ".md"

// Store keeps notes as files in a root directory, named by UUID.
type Store struct {
	mu     sync.RWMutex
	root   string
	ext    string
	closed bool
	done   chan struct{}
}

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithExtension sets the note file extension, dot included.
func WithExtension(ext string) Option {
	return func(s *Store) {
		if strings.HasPrefix(ext, ".") && len(ext) > 1 {
			s.ext = ext
		}
	}
}

// Open creates the root directory if needed and returns a store over
// it.
func Open(root string, opts ...Option) (*Store, error) {
	s := &Store{
		root: root,
		ext:  DefaultExtension,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("open note store: %w", err)
	}
	return s, nil
}

// Root returns the store's directory.
func (s *Store) Root() string { return s.root }

// Path returns the file path a note ID maps to.
func (s *Store) Path(id uuid.UUID) string {
	return filepath.Join(s.root, id.String()+s.ext)
}

// Close marks the store closed and stops its watchers. Further
// operations fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	return nil
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Create writes a new note whose content starts with the title line
// and returns its metadata.
func (s *Store) Create(title string) (*Note, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	id := uuid.New()
	title = strings.TrimSpace(title)
	content := ""
	if title != "" {
		content = title + "\n"
	}

	path := s.Path(id)
	if err := s.writeAtomic(path, []byte(content)); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	createdAt := time.Now()
	modifiedAt := createdAt
	if info, err := os.Stat(path); err == nil {
		modifiedAt = info.ModTime()
	}
	return &Note{
		ID:         id,
		Title:      title,
		Path:       path,
		Language:   strings.TrimPrefix(s.ext, "."),
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		Encoding:   EncodingUTF8,
		LineEnding: buffer.LineEndingLF,
	}, nil
}

// Load reads and decodes a note, returning its metadata and the
// LF-normalized content. The metadata records the encoding and line
// ending style found so a later save reproduces the file's form.
func (s *Store) Load(id uuid.UUID) (*Note, string, error) {
	if s.isClosed() {
		return nil, "", ErrStoreClosed
	}

	path := s.Path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("load note %s: %w", id, ErrNoteNotFound)
		}
		return nil, "", fmt.Errorf("load note %s: %w", id, err)
	}

	text, enc, le, err := decodeText(data)
	if err != nil {
		return nil, "", fmt.Errorf("load note %s: %w", id, err)
	}

	note := &Note{
		ID:         id,
		Title:      titleFrom(text),
		Path:       path,
		Language:   strings.TrimPrefix(s.ext, "."),
		Encoding:   enc,
		LineEnding: le,
	}
	if info, err := os.Stat(path); err == nil {
		note.CreatedAt = info.ModTime()
		note.ModifiedAt = info.ModTime()
	}
	return note, text, nil
}

// Save writes content over an existing note, preserving the encoding
// the file already carries. Line endings arrive already rendered by
// the document that owns the note.
func (s *Store) Save(id uuid.UUID, content string) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	path := s.Path(id)
	enc, err := s.sniffEncoding(path)
	if err != nil {
		return fmt.Errorf("save note %s: %w", id, err)
	}
	data, err := encodeText(content, enc)
	if err != nil {
		return fmt.Errorf("save note %s: %w", id, err)
	}
	if err := s.writeAtomic(path, data); err != nil {
		return fmt.Errorf("save note %s: %w", id, err)
	}
	return nil
}

// List returns every note in the store, newest modification first.
// Files that fail to decode still appear, with an empty title, so the
// listing never hides what is in the directory.
func (s *Store) List() ([]*Note, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	var notes []*Note
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), s.ext) {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			continue
		}

		note := &Note{
			ID:       id,
			Path:     filepath.Join(s.root, name),
			Language: strings.TrimPrefix(s.ext, "."),
		}
		if info, err := entry.Info(); err == nil {
			note.CreatedAt = info.ModTime()
			note.ModifiedAt = info.ModTime()
		}
		if data, err := os.ReadFile(note.Path); err == nil {
			if text, enc, le, err := decodeText(data); err == nil {
				note.Title = titleFrom(text)
				note.Encoding = enc
				note.LineEnding = le
			}
		}
		notes = append(notes, note)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].ModifiedAt.After(notes[j].ModifiedAt)
	})
	return notes, nil
}

// Delete removes a note's file.
func (s *Store) Delete(id uuid.UUID) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	if err := os.Remove(s.Path(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("delete note %s: %w", id, ErrNoteNotFound)
		}
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// sniffEncoding reads just enough of an existing note to identify its
// byte order mark.
func (s *Store) sniffEncoding(path string) (Encoding, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EncodingUTF8, ErrNoteNotFound
		}
		return EncodingUTF8, err
	}
	defer f.Close()

	head := make([]byte, 3)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return EncodingUTF8, err
	}
	enc, _ := detectEncoding(head[:n])
	return enc, nil
}

// writeAtomic writes data through a hidden temp file in the store
// directory and renames it into place, so a crash never leaves a
// half-written note and watchers never see partial content.
func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.root, ".qnote-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// titleFrom derives a note's title from its first non-blank line,
// stripping markdown heading markers.
func titleFrom(text string) string {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "#"))
	}
	return ""
}
