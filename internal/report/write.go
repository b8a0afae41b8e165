// Package report renders validation results and writes run artifacts.
package report

import (
	"fmt"
	"os"
)

// WriteFile atomically writes data to path using a temp file + rename,
// so a crashed run never leaves a half-written artifact behind.
func WriteFile(path string, data []byte) error {
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on failure
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
