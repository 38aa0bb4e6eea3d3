package memory

import (
	"context"
	"sync"

	"github.com/marcelsud/webhook-scheduler/webhook"
)

/* In-memory implementation of webhook.Repository
 * A ring buffer guarded by a mutex: appends past capacity overwrite the oldest entry
 * Entries are cloned on the way in and out, so callers never share Data with the store
 * Nothing survives a restart
 */

// DefaultCapacity is the number of responses kept when no capacity is given
const DefaultCapacity = 100

type Repository struct {
	mu      sync.RWMutex
	entries []webhook.Response
	head    int // index of the oldest entry
	size    int
}

// NewRepository creates an empty history holding at most capacity entries
func NewRepository(capacity int) *Repository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Repository{
		entries: make([]webhook.Response, capacity),
	}
}

// Append adds a response at the tail, evicting the head when full
func (r *Repository) Append(ctx context.Context, response webhook.Response) error {
	response = response.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.entries)
	if r.size < capacity {
		r.entries[(r.head+r.size)%capacity] = response
		r.size++
		return nil
	}
	r.entries[r.head] = response
	r.head = (r.head + 1) % capacity
	return nil
}

// List returns a copy of the history, oldest first
func (r *Repository) List(ctx context.Context) ([]webhook.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := make([]webhook.Response, r.size)
	for i := 0; i < r.size; i++ {
		history[i] = r.entries[(r.head+i)%len(r.entries)].Clone()
	}
	return history, nil
}

// Latest returns the tail entry
func (r *Repository) Latest(ctx context.Context) (webhook.Response, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.size == 0 {
		return webhook.Response{}, false, nil
	}
	return r.entries[(r.head+r.size-1)%len(r.entries)].Clone(), true, nil
}

// Len returns the number of stored entries
func (r *Repository) Len(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size, nil
}

// Capacity returns the maximum number of stored entries
func (r *Repository) Capacity() int {
	return len(r.entries)
}

// Clear empties the history
func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries) // release references held by evicted slots
	r.head = 0
	r.size = 0
	return nil
}
