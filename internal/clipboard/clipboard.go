// Package clipboard provides the editor's copy history: a bounded
// most-recent-first ring of copied strings plus an optional bridge to
// the operating system clipboard.
package clipboard

import "sync"

// DefaultCapacity is the ring size used when none is given.
const DefaultCapacity = 10

// Ring holds recently copied strings, most recent first. A paste reads
// the current entry; cycling rotates through older entries until the
// next push resets the position.
type Ring struct {
	mu       sync.Mutex
	items    []string
	capacity int
	pos      int
}

// NewRing creates a ring with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// Push inserts text at the front of the ring and resets the cycle
// position. Empty strings and texts equal to the current front entry
// are ignored; when the ring is full the oldest entry is dropped.
func (r *Ring) Push(text string) {
	if text == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) > 0 && r.items[0] == text {
		r.pos = 0
		return
	}

	r.items = append([]string{text}, r.items...)
	if len(r.items) > r.capacity {
		r.items = r.items[:r.capacity]
	}
	r.pos = 0
}

// Current returns the entry at the cycle position. The second return
// is false when the ring is empty.
func (r *Ring) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return "", false
	}
	return r.items[r.pos], true
}

// Cycle advances to the next older entry, wrapping at the tail, and
// returns it. The second return is false when the ring is empty.
func (r *Ring) Cycle() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return "", false
	}
	r.pos = (r.pos + 1) % len(r.items)
	return r.items[r.pos], true
}

// Items returns a copy of the ring contents, most recent first.
func (r *Ring) Items() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.items...)
}

// Len returns the number of stored entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Clear removes every entry.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.pos = 0
}
