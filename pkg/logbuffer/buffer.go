// Package logbuffer holds the ordered sequence of log entries received from
// the dashboard stream.
package logbuffer

import (
	"sync"

	"github.com/weelink/dashctl/pkg/sse"
)

// Buffer is an append-only, insertion-ordered log sequence. A Buffer created
// with a positive max keeps only the newest max entries in a ring.
type Buffer struct {
	mu      sync.RWMutex
	max     int
	entries []sse.Payload

	// start is the index of the oldest entry once the ring is full.
	start int
}

// New returns a Buffer. max <= 0 means unbounded.
func New(max int) *Buffer {
	if max < 0 {
		max = 0
	}
	return &Buffer{max: max}
}

// AppendLog appends entry, overwriting the oldest entry when the cap is
// reached.
func (b *Buffer) AppendLog(entry sse.Payload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max == 0 || len(b.entries) < b.max {
		b.entries = append(b.entries, entry)
		return
	}
	b.entries[b.start] = entry
	b.start = (b.start + 1) % b.max
}

// Entries returns a copy of the entries, oldest first.
func (b *Buffer) Entries() []sse.Payload {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]sse.Payload, len(b.entries))
	n := copy(out, b.entries[b.start:])
	copy(out[n:], b.entries[:b.start])
	return out
}

// Len returns the number of entries held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Clear removes every entry.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	b.start = 0
}
