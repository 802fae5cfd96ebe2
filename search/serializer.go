package search

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrCorruptIndex is returned when a persisted index cannot be parsed into
// whole records. Rebuilding the index fixes it.
var ErrCorruptIndex = errors.New("corrupt index")

// Entry is one persisted record: a file's directory relative to the indexed
// root and its name.
type Entry struct {
	Dir  string // Directory with the root prefix stripped. Keeps its leading separator.
	Name string // Base name of the file.
}

// Path joins the relative directory and the name with a forward slash.
func (e Entry) Path() string {
	return e.Dir + "/" + e.Name
}

// Store is the on-disk filename index of one root directory.
type Store struct {
	Root string // Normalized root directory.

	path string
	walk func(root string, fn func(dir, name string) error) error
}

// NormalizeRoot makes root absolute, cleans it and converts it to forward
// slashes. If the working directory is unknown root is only cleaned.
func NormalizeRoot(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.ToSlash(filepath.Clean(root))
}

// relDir returns dir relative to root with a leading slash, or "" for root.
func relDir(root, dir string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	return "/" + filepath.ToSlash(rel), nil
}

// IndexName returns the file name of the index for a normalized root.
// It only depends on the root string, so every invocation for the same root
// finds the same index.
func IndexName(root string) string {
	sum := sha1.Sum([]byte(root))
	return "index_" + hex.EncodeToString(sum[:])
}

// NewStore returns the store for root, kept in indexDir.
// Nothing is read or written until the store is used.
func NewStore(indexDir, root string) *Store {
	root = NormalizeRoot(root)
	return &Store{
		Root: root,
		path: filepath.Join(indexDir, IndexName(root)),
		walk: WalkDir,
	}
}

// Path returns the location of the index file.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the index file has been written.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("unable to stat index %s: %w", s.path, err)
}

// ShouldRebuild returns true if force is set or the index does not exist.
// Changes to the file tree are never detected.
func (s *Store) ShouldRebuild(force bool) (bool, error) {
	if force {
		return true, nil
	}

	exists, err := s.Exists()
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Rebuild walks the root and overwrites the index with one record per file.
// The write is not atomic: a failure midway leaves a truncated index.
func (s *Store) Rebuild() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("unable to create index directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("unable to create index %s: %w", s.path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	count := 0
	root := filepath.FromSlash(s.Root)
	err = s.walk(root, func(dir, name string) error {
		// Strip the root to save space, it is the same for every record.
		rel, err := relDir(root, dir)
		if err != nil {
			return err
		}
		count++
		_, err = fmt.Fprintf(w, "%s\n%s\n", rel, name)
		return err
	})
	if err != nil {
		return fmt.Errorf("unable to index %s: %w", s.Root, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("unable to write index %s: %w", s.path, err)
	}

	slog.Debug("index rebuilt", "root", s.Root, "index", s.path, "entries", count)
	return file.Close()
}

// Entries reads every record of the index.
func (s *Store) Entries() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("unable to read index %s: %w", s.path, err)
	}

	content := string(data)
	if content == "" {
		return nil, nil
	}

	if !strings.HasSuffix(content, "\n") {
		return nil, fmt.Errorf("%w: %s: last record is truncated", ErrCorruptIndex, s.path)
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("%w: %s: odd number of lines (%d)", ErrCorruptIndex, s.path, len(lines))
	}

	entries := make([]Entry, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		entries = append(entries, Entry{Dir: lines[i], Name: lines[i+1]})
	}
	return entries, nil
}
