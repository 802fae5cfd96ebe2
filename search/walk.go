package search

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// WalkDir calls fn with the containing directory and name of every
// non-directory entry under root, in lexical order. Symlinks are not followed:
// a link to a directory is skipped, any other link is reported as a file.
// Unreadable subdirectories are skipped.
func WalkDir(root string, fn func(dir, name string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The root itself must be readable.
			if path == root {
				return err
			}
			slog.Debug("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		}
		return fn(filepath.Dir(path), d.Name())
	})
}
