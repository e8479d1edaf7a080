// Package jsonfile provides JSON file-based persistence for history and
// settings.
package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/chefhat/pkg/randid"
)

// writeAtomic writes data to path via a temp file and rename so readers
// never observe a partial write.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp := path + "." + randid.Generate(8) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
