package event

import (
	"sync"
)

// DefaultRingSize bounds the status feed to the most recent entries.
const DefaultRingSize = 24

// Ring is a bounded, append-only buffer of status events. Once full,
// the oldest entry is overwritten. Thread-safe for concurrent readers.
type Ring struct {
	mu    sync.RWMutex
	buf   []StatusEvent
	next  int
	count int
}

// NewRing creates a ring holding at most size entries.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]StatusEvent, size)}
}

// Append adds an event, evicting the oldest when full.
func (r *Ring) Append(ev StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = ev
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Cap returns the maximum number of buffered events.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Snapshot returns the buffered events newest first.
func (r *Ring) Snapshot() []StatusEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]StatusEvent, 0, r.count)
	for i := 1; i <= r.count; i++ {
		idx := (r.next - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out
}
