// Package safeio provides atomic file writes: content lands in a temp file
// next to the destination and is renamed into place, so a failed run never
// leaves a truncated output behind.
package safeio

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output file permissions.
const filePerm = 0o644

// WriteFileAtomic writes data to path through a temp file in the same
// directory. The destination is only replaced once the full content has
// been written and synced; on any error the temp file is removed and the
// existing destination (if any) is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	if writeErr == nil {
		writeErr = tmp.Sync()
	}

	closeErr := tmp.Close()

	if writeErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("write temp file: %w", writeErr)
	}

	if closeErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("close temp file: %w", closeErr)
	}

	chmodErr := os.Chmod(tmpName, filePerm)
	if chmodErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	renameErr := os.Rename(tmpName, path)
	if renameErr != nil {
		os.Remove(tmpName)

		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}
