package history

import (
	"time"

	"github.com/akvaristik/aquamon/internal/model"
)

// Buffer is a bounded, time-ordered sample buffer with a minimum spacing
// between entries. It is not safe for concurrent use on its own; the owning
// service's lock covers it.
type Buffer struct {
	entries  []model.HistoryEntry
	capacity int
	interval time.Duration
	lastAdd  time.Time
}

func New(capacity int, interval time.Duration) *Buffer {
	return &Buffer{
		entries:  make([]model.HistoryEntry, 0, capacity),
		capacity: capacity,
		interval: interval,
	}
}

// Add appends the entry once the sampling window has elapsed since the last
// kept entry, evicting the oldest entry when full. The first entry is always
// kept. Returns whether the entry was kept.
func (b *Buffer) Add(e model.HistoryEntry, now time.Time) bool {
	if !b.lastAdd.IsZero() && now.Sub(b.lastAdd) < b.interval {
		return false
	}
	if len(b.entries) >= b.capacity {
		b.entries = b.entries[1:]
	}
	b.entries = append(b.entries, e)
	b.lastAdd = now
	return true
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *Buffer) Entries() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Buffer) Len() int {
	return len(b.entries)
}
