package jsonfile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hay-kot/chefhat/internal/core/history"
)

// HistoryFile implements history.Persister using a JSON file holding the
// entry array.
type HistoryFile struct {
	path string
	mu   sync.RWMutex
}

// NewHistoryFile creates a history persister at the given path.
func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{path: path}
}

// Path returns the backing file path.
func (f *HistoryFile) Path() string {
	return f.path
}

// Read returns the stored entries. A missing or empty file holds no entries.
// Unparsable content returns an error wrapping history.ErrCorrupted.
func (f *HistoryFile) Read(ctx context.Context) ([]history.Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	entries, err := history.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", history.ErrCorrupted, f.path, err)
	}
	return entries, nil
}

// Write replaces the file contents with entries.
func (f *HistoryFile) Write(ctx context.Context, entries []history.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := history.Encode(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := writeAtomic(f.path, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

var _ history.Persister = (*HistoryFile)(nil)
