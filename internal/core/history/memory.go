package history

import (
	"context"
	"slices"
	"sync"
)

// MemoryPersister keeps history in memory. It is a test double for the
// storage backends and can inject read and write failures.
type MemoryPersister struct {
	mu      sync.Mutex
	entries []Entry
	// ReadErr and WriteErr, when set, are returned by Read and Write.
	ReadErr  error
	WriteErr error
	Writes   int
}

// NewMemoryPersister returns a MemoryPersister seeded with entries.
func NewMemoryPersister(entries ...Entry) *MemoryPersister {
	return &MemoryPersister{entries: slices.Clone(entries)}
}

// Read implements Persister.
func (m *MemoryPersister) Read(context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return slices.Clone(m.entries), nil
}

// Write implements Persister.
func (m *MemoryPersister) Write(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes++
	m.entries = slices.Clone(entries)
	return nil
}

var _ Persister = (*MemoryPersister)(nil)
