package language

import (
	"context"
	"sync"
)

// MemoryStore keeps the language preference in memory.
type MemoryStore struct {
	mu   sync.Mutex
	code Code
	// WriteErr, when set, is returned by SetLanguage.
	WriteErr error
}

// NewMemoryStore returns a MemoryStore holding code. An empty code means
// nothing is stored.
func NewMemoryStore(code Code) *MemoryStore {
	return &MemoryStore{code: code}
}

// Language implements Store.
func (m *MemoryStore) Language(context.Context) (Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.code == "" {
		return "", ErrNotSet
	}
	return m.code, nil
}

// SetLanguage implements Store.
func (m *MemoryStore) SetLanguage(_ context.Context, code Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.code = code
	return nil
}

var _ Store = (*MemoryStore)(nil)
