package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps history in process memory. Used when persistence is
// disabled and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	seq     map[string]int
	next    int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seq: make(map[string]int)}
}

// Record saves a copy of entry
func (m *MemoryStore) Record(ctx context.Context, entry *Entry) error {
	if err := prepare(entry); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.seq[entry.ID]; exists {
		return duplicateID(entry.ID)
	}

	stored := *entry
	m.entries = append(m.entries, &stored)
	m.seq[stored.ID] = m.next
	m.next++
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (m *MemoryStore) List(ctx context.Context, limit int) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := make([]*Entry, len(m.entries))
	copy(sorted, m.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return m.seq[a.ID] > m.seq[b.ID]
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]*Entry, len(sorted))
	for i, e := range sorted {
		clone := *e
		result[i] = &clone
	}
	return result, nil
}

// Get returns one entry by ID
func (m *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, notFound(id)
}

// Clear removes all entries
func (m *MemoryStore) Clear(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.entries))
	m.entries = nil
	m.seq = make(map[string]int)
	return n, nil
}

// Count returns the number of stored entries
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Ping always succeeds
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}
