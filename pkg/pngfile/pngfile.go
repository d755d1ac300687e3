// Package pngfile moves PNG files between disk and memory. It performs no
// parsing of its own; callers hand the bytes to package png.
package pngfile

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// DefaultPerm is used when writing a file that does not exist yet.
const DefaultPerm fs.FileMode = 0o644

// Read returns the complete contents of the file at path.
func Read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading %s: %w", path, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the file at path with data. The replacement is atomic: a
// failed write never leaves a partially written file behind. An existing
// file keeps its permission bits.
func Write(path string, data []byte) error {
	perm := DefaultPerm
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("writing %s: %w", path, &fs.PathError{Op: "write", Path: path, Err: fs.ErrInvalid})
		}
		perm = info.Mode().Perm()
	}

	if err := atomicwriter.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
