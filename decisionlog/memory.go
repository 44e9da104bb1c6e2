package decisionlog

import (
	"context"
	"sync"
	"time"
)

// Compile-time interface check.
var _ Recorder = (*Memory)(nil)

// Memory is a bounded in-memory decision log. When full, the oldest entry
// is evicted. Suitable for tests and single-process deployments; persistent
// backends implement Recorder against their own store.
type Memory struct {
	mu      sync.RWMutex
	entries []*Entry
	maxSize int
}

// MemoryOption configures the memory log.
type MemoryOption func(*Memory)

// WithMaxSize sets the maximum number of retained entries. A non-positive
// size disables the bound.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// NewMemory creates a new in-memory decision log.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{maxSize: 10000}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record appends an entry, evicting the oldest entries at capacity.
func (m *Memory) Record(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.maxSize > 0 && len(m.entries) >= m.maxSize {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, e)
	return nil
}

// List returns entries matching the filter, oldest first.
func (m *Memory) List(_ context.Context, filter *QueryFilter) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Entry
	for _, e := range m.entries {
		if !matchFilter(e, filter) {
			continue
		}
		out = append(out, e)
		if filter != nil && filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of retained entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Purge removes entries created before the given time and returns the
// number removed.
func (m *Memory) Purge(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	removed := 0
	for _, e := range m.entries {
		if e.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return removed, nil
}

func matchFilter(e *Entry, f *QueryFilter) bool {
	if f == nil {
		return true
	}
	if f.SubjectID != "" && e.SubjectID != f.SubjectID {
		return false
	}
	if f.Decision != "" && e.Decision != f.Decision {
		return false
	}
	if f.After != nil && !e.CreatedAt.After(*f.After) {
		return false
	}
	if f.Before != nil && !e.CreatedAt.Before(*f.Before) {
		return false
	}
	return true
}
