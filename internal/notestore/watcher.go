package notestore

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Op classifies an external change to a note file.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether the operation includes the given flag.
func (o Op) Has(f Op) bool { return o&f != 0 }

// String returns a readable form like "create|write".
func (o Op) String() string {
	var parts []string
	if o.Has(OpCreate) {
		parts = append(parts, "create")
	}
	if o.Has(OpWrite) {
		parts = append(parts, "write")
	}
	if o.Has(OpRemove) {
		parts = append(parts, "remove")
	}
	if o.Has(OpRename) {
		parts = append(parts, "rename")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event reports an external change to a note file.
type Event struct {
	NoteID uuid.UUID
	Path   string
	Op     Op
}

// watchBufferSize bounds pending events; bursts beyond it are dropped
// rather than blocking the filesystem notifier.
const watchBufferSize = 64

// Watch streams events for note files changed in the store directory.
// Hidden files and foreign extensions are ignored. The channel closes
// when ctx ends or the store is closed.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(s.root); err != nil {
		fsw.Close()
		return nil, err
	}

	events := make(chan Event, watchBufferSize)
	go func() {
		defer close(events)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case fe, ok := <-fsw.Events:
				if !ok {
					return
				}
				ev, ok := s.convertEvent(fe)
				if !ok {
					continue
				}
				select {
				case events <- ev:
				default:
					// Buffer full; drop rather than stall the notifier.
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return events, nil
}

// convertEvent maps a filesystem event onto a note, rejecting paths
// that are not note files.
func (s *Store) convertEvent(fe fsnotify.Event) (Event, bool) {
	base := filepath.Base(fe.Name)
	ext := filepath.Ext(base)
	if strings.HasPrefix(base, ".") || !strings.EqualFold(ext, s.ext) {
		return Event{}, false
	}
	id, err := uuid.Parse(strings.TrimSuffix(base, ext))
	if err != nil {
		return Event{}, false
	}
	op := convertOp(fe.Op)
	if op == 0 {
		return Event{}, false
	}
	return Event{NoteID: id, Path: fe.Name, Op: op}, true
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
