package store

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when the history holds no records.
	ErrNotFound = errors.New("no records in history")
)

// DefaultCapacity is the number of records a history keeps when no
// capacity is configured.
const DefaultCapacity = 100

// History is a concurrency-safe, bounded, newest-first list of records.
// Inserting prepends; once the capacity is reached the oldest record is
// silently dropped.
type History[T any] struct {
	mu sync.RWMutex

	// records[0] is the newest
	records []T

	// retention configuration
	capacity int
}

// NewHistory creates a History that retains at most capacity records.
// If capacity is <= 0, DefaultCapacity is used.
func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History[T]{
		records:  make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Prepend inserts a record at the front and enforces retention.
func (h *History[T]) Prepend(record T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	keep := len(h.records)
	if keep >= h.capacity {
		keep = h.capacity - 1
	}

	next := make([]T, 0, h.capacity)
	next = append(next, record)
	next = append(next, h.records[:keep]...)
	h.records = next
}

// Latest returns the newest record.
func (h *History[T]) Latest() (T, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.records) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return h.records[0], nil
}

// Items returns a copy of all records, newest first.
func (h *History[T]) Items() []T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]T, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of retained records.
func (h *History[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Capacity returns the retention limit.
func (h *History[T]) Capacity() int {
	return h.capacity
}
