package history

import "time"

// Option is a functional option for configuring a History.
type Option func(*History)

// WithLimit caps the number of retained undo steps.
func WithLimit(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// WithCoalesceInterval sets the maximum gap between keystrokes that
// still merge into one undo step.
func WithCoalesceInterval(d time.Duration) Option {
	return func(h *History) {
		if d > 0 {
			h.interval = d
		}
	}
}

// WithClock injects the time source, letting tests drive coalescing
// deterministically.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}
