package history

// BeginTransaction opens a transaction. Edits recorded until the
// matching EndTransaction are committed as one atomic undo step.
// Calls nest; only the outermost EndTransaction commits. A transaction
// boundary always breaks insert coalescing.
func (h *History) BeginTransaction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.txDepth++
	h.runOpen = false
}

// EndTransaction closes the innermost open transaction. When the
// outermost transaction ends, the collected edits become a single undo
// step; an empty transaction commits nothing. Unbalanced calls are
// ignored.
func (h *History) EndTransaction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.txDepth == 0 {
		return
	}
	h.txDepth--
	if h.txDepth > 0 {
		return
	}

	if len(h.txEdits) == 0 {
		return
	}

	h.pushLocked(&step{edits: h.txEdits, timestamp: h.now()})
	h.txEdits = nil
	h.runOpen = false
}

// InTransaction returns true while a transaction is open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.txDepth > 0
}
