package history

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/itzCozi/QNote-sub000/internal/engine/buffer"
)

// step is one undo unit: edits in the order they were applied.
type step struct {
	edits     []buffer.Edit
	timestamp time.Time
}

// end returns the offset just past the step's last inserted text.
func (s *step) end() buffer.ByteOffset {
	last := s.edits[len(s.edits)-1]
	return last.Range.Start + buffer.ByteOffset(len(last.NewText))
}

// History manages undo/redo state for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []*step
	redoStack []*step

	// Open transaction state. Only the outermost End commits.
	txDepth int
	txEdits []buffer.Edit

	// Coalescing state. runOpen is true while the top of the undo
	// stack may still absorb further single-rune inserts.
	runOpen  bool
	lastTime time.Time

	interval   time.Duration
	now        func() time.Time
	maxEntries int
}

// New creates a history manager.
func New(opts ...Option) *History {
	h := &History{
		interval:   time.Second,
		now:        time.Now,
		maxEntries: 1000,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Record adds an applied edit to the history and clears the redo stack.
// Inside a transaction the edit is collected for the transaction's
// single step instead.
func (h *History) Record(e buffer.Edit) {
	if e.IsNoOp() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.txDepth > 0 {
		h.txEdits = append(h.txEdits, e)
		return
	}

	now := h.now()
	if h.coalesceLocked(e, now) {
		h.redoStack = nil
		h.lastTime = now
		return
	}

	h.pushLocked(&step{edits: []buffer.Edit{e}, timestamp: now})
	h.runOpen = isSingleRuneInsert(e)
	h.lastTime = now
}

// coalesceLocked merges a single-rune insert into the open run on top
// of the undo stack. The run breaks on anything else: another edit
// kind, a non-adjacent offset, or too much elapsed time.
func (h *History) coalesceLocked(e buffer.Edit, now time.Time) bool {
	if !h.runOpen || len(h.undoStack) == 0 {
		return false
	}
	if !isSingleRuneInsert(e) {
		return false
	}
	top := h.undoStack[len(h.undoStack)-1]
	if e.Range.Start != top.end() {
		return false
	}
	if now.Sub(h.lastTime) > h.interval {
		return false
	}

	top.edits = append(top.edits, e)
	return true
}

// isSingleRuneInsert reports whether the edit inserts exactly one rune.
func isSingleRuneInsert(e buffer.Edit) bool {
	return e.IsInsert() && utf8.RuneCountInString(e.NewText) == 1
}

// pushLocked pushes a step, clears redo, and trims to the entry limit.
func (h *History) pushLocked(s *step) {
	h.undoStack = append(h.undoStack, s)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// BreakCoalescing closes the current coalescing run. The document calls
// this when the selection moves, so typing after a cursor jump starts a
// fresh undo step.
func (h *History) BreakCoalescing() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runOpen = false
}

// Undo pops the most recent step and returns the inverse edits, ordered
// for direct application. Returns (nil, false) when there is nothing to
// undo; that is a normal state, not an error.
func (h *History) Undo() ([]buffer.Edit, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, false
	}

	s := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, s)
	h.runOpen = false

	// Invert in reverse order: each inverse is valid against the state
	// with the later edits already undone.
	inverse := make([]buffer.Edit, 0, len(s.edits))
	for i := len(s.edits) - 1; i >= 0; i-- {
		inverse = append(inverse, s.edits[i].Invert())
	}
	return inverse, true
}

// Redo pops the most recently undone step and returns its edits for
// reapplication in order. Returns (nil, false) when there is nothing to
// redo.
func (h *History) Redo() ([]buffer.Edit, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, false
	}

	s := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, s)
	h.runOpen = false

	replay := make([]buffer.Edit, len(s.edits))
	copy(replay, s.edits)
	return replay, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo state, including any open transaction.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.txDepth = 0
	h.txEdits = nil
	h.runOpen = false
}

// SetLimit changes the maximum number of retained steps, trimming the
// oldest if the stack is already larger.
func (h *History) SetLimit(n int) {
	if n <= 0 {
		n = 1000
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = n
	if len(h.undoStack) > n {
		excess := len(h.undoStack) - n
		h.undoStack = h.undoStack[excess:]
	}
}
