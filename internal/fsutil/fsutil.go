// Package fsutil writes files so that readers never see partial content.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultMode is used for files that do not exist yet.
const DefaultMode os.FileMode = 0o644

// ReplaceFile atomically replaces the file at path with data. The mode of an
// existing file is kept.
func ReplaceFile(path string, data []byte) error {
	mode := DefaultMode
	stat, err := os.Stat(path)
	switch {
	case err == nil:
		if !stat.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		mode = stat.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := writeFileAtomic(path, data, mode); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
