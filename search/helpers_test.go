package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTree creates an empty file for every slash-separated path under a new
// temporary root and returns the root.
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	return root
}

// newTestStore returns a store for root kept in its own temporary directory.
func newTestStore(t *testing.T, root string) *Store {
	t.Helper()
	return NewStore(t.TempDir(), root)
}
