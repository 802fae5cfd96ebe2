package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abiiranathan/filesearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRoot(t *testing.T, paths ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	return root
}

type shellRun struct {
	out    string
	opened []string
	err    error
}

func runShell(t *testing.T, store *search.Store, input string, reindex bool) shellRun {
	t.Helper()

	var out bytes.Buffer
	config := DefaultConfig
	shell := NewShell(strings.NewReader(input), &out, &config)

	var opened []string
	shell.Open = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	err := shell.Run(store, reindex)
	return shellRun{out: out.String(), opened: opened, err: err}
}

func TestShellOpensChoice(t *testing.T) {
	root := makeRoot(t, "report_final.txt", "report_draft.txt", "notes.md")
	store := search.NewStore(t.TempDir(), root)

	run := runShell(t, store, "report\n1\n", false)
	require.NoError(t, run.err)

	assert.Contains(t, run.out, "Query: ")
	assert.Contains(t, run.out, "Found 2 results in ")
	assert.Contains(t, run.out, "1: report_draft.txt\n")
	assert.Contains(t, run.out, "2: report_final.txt\n")
	assert.Contains(t, run.out, "Open a file (1-2)? ")
	assert.Contains(t, run.out, "Opening report_draft.txt...")
	assert.NotContains(t, run.out, "expanding search")
	assert.Equal(t, []string{filepath.Join(root, "report_draft.txt")}, run.opened)
}

func TestShellIgnoresInvalidChoice(t *testing.T) {
	root := makeRoot(t, "report_final.txt", "report_draft.txt", "notes.md")
	store := search.NewStore(t.TempDir(), root)

	for _, choice := range []string{"x", "", "0", "-1", "3", "1.5"} {
		t.Run(choice, func(t *testing.T) {
			run := runShell(t, store, "report\n"+choice+"\n", false)
			require.NoError(t, run.err)
			assert.Empty(t, run.opened)
			assert.NotContains(t, run.out, "Opening")
		})
	}
}

func TestShellBroadens(t *testing.T) {
	root := makeRoot(t, "invoices/2023/a.pdf", "misc/b.pdf")
	store := search.NewStore(t.TempDir(), root)

	run := runShell(t, store, "invoices\n1\n", false)
	require.NoError(t, run.err)

	assert.Contains(t, run.out, "Found no matching names, expanding search...")
	assert.Contains(t, run.out, "1: invoices/2023/a.pdf\n")
	assert.Equal(t, []string{filepath.Join(root, "invoices", "2023", "a.pdf")}, run.opened)
}

func TestShellNoResults(t *testing.T) {
	root := makeRoot(t, "report", "zzzzzzzzzzzz")
	store := search.NewStore(t.TempDir(), root)

	run := runShell(t, store, "reprot\n1\n", false)
	require.NoError(t, run.err)

	assert.Contains(t, run.out, "Found 0 results")
	assert.Contains(t, run.out, "Did you mean: report?")
	assert.NotContains(t, run.out, "Open a file")
	assert.Empty(t, run.opened)
}

func TestShellEndOfInput(t *testing.T) {
	store := search.NewStore(t.TempDir(), makeRoot(t, "a.txt"))

	run := runShell(t, store, "", false)
	assert.NoError(t, run.err)
	assert.NotContains(t, run.out, "Found")
}

func TestShellCorruptIndex(t *testing.T) {
	store := search.NewStore(t.TempDir(), makeRoot(t, "a.txt", "b.txt"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("/\na.txt\n/"), 0o644))

	run := runShell(t, store, "a\n", false)
	assert.ErrorIs(t, run.err, search.ErrCorruptIndex)
	assert.Contains(t, run.err.Error(), "--reindex")

	run = runShell(t, store, "a\n1\n", true)
	require.NoError(t, run.err)
	assert.Equal(t, []string{filepath.Join(store.Root, "a.txt")}, run.opened)
}

func TestChoose(t *testing.T) {
	results := &search.Results{
		Matches: []search.Match{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"}},
		Total:   5,
	}

	m, ok := Choose(results, 1)
	assert.True(t, ok)
	assert.Equal(t, "a", m.Name)

	m, ok = Choose(results, 5)
	assert.True(t, ok)
	assert.Equal(t, "e", m.Name)

	// K results exist, asking for the K+1th is no choice.
	_, ok = Choose(results, 6)
	assert.False(t, ok)

	_, ok = Choose(results, 0)
	assert.False(t, ok)
}

func TestShellColor(t *testing.T) {
	var out bytes.Buffer
	config := DefaultConfig
	shell := NewShell(strings.NewReader(""), &out, &config)

	assert.Equal(t, "plain", shell.paint(shell.number, "plain"))
	shell.Color = true
	assert.Contains(t, shell.paint(shell.number, "styled"), "styled")
}
