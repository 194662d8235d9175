package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func WriteAll(file *os.File, buf []byte) (int, error) {
	total := 0
	remaining := len(buf)
	for remaining > 0 {
		n, err := file.Write(buf[total:])
		if err != nil {
			return total, fmt.Errorf("failed to write file: %w", err)
		}

		total += n
		remaining -= n
	}

	return total, nil
}

// WriteFileAtomic writes buf to a temporary file next to path and renames it
// over path, so readers see either the old or the new content. An existing
// file keeps its permission bits.
func WriteFileAtomic(path string, buf []byte, perm os.FileMode) (err error) {
	if fi, statErr := os.Stat(path); statErr == nil {
		perm = fi.Mode().Perm()
	}

	dir, name := filepath.Split(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))
	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = WriteAll(file, buf); err != nil {
		return err
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
