// Package utils holds small helpers shared by the CLI entry point.
package utils

import (
	"io"
	"slices"
	"sync"
)

// DeferredWriter buffers writes in memory until Flush. Each Write is kept as
// a separate record so line-oriented writers such as zerolog.ConsoleWriter
// receive one event per call.
type DeferredWriter struct {
	mu      sync.Mutex
	records [][]byte
}

// Write stores a copy of p.
func (w *DeferredWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.records = append(w.records, slices.Clone(p))
	return len(p), nil
}

// Len returns the number of buffered records.
func (w *DeferredWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}

// Flush writes every buffered record to out in order and empties the buffer.
func (w *DeferredWriter) Flush(out io.Writer) error {
	w.mu.Lock()
	records := w.records
	w.records = nil
	w.mu.Unlock()

	for _, r := range records {
		if _, err := out.Write(r); err != nil {
			return err
		}
	}
	return nil
}
