package search

import (
	"cmp"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/abiiranathan/filesearch/alg"
)

// DefaultMaxResults is the number of ranked matches kept when none is given.
const DefaultMaxResults = 5

// Match is a document with a positive score and the search name it was
// scored under.
type Match struct {
	Name  string  // Search name the document was keyed by.
	Score float64 // Always positive.
	Path  string  // Relative directory and name.
}

// DisplayPath returns the path with forward slashes and no leading separator.
func (m Match) DisplayPath() string {
	return DisplayPath(m.Path)
}

// DisplayPath normalizes a document path for printing.
func DisplayPath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "/")
}

// Results of a query, best match first.
type Results struct {
	Matches     []Match  // At most the requested number of matches.
	Total       int      // Number of matches found, may exceed len(Matches).
	Broadened   bool     // Matches come from the full-path pass.
	Suggestions []string // Filenames close to the query when nothing matched.
}

// Options control Find.
type Options struct {
	Reindex     bool // Rebuild the index before searching.
	MaxResults  int  // Matches to keep. Defaults to DefaultMaxResults.
	Suggestions int  // Filenames to suggest when nothing matches. Zero disables.
}

// Search scores every indexed file against query under mode and returns
// those with a positive score, in index order. The index is rebuilt first if
// force is set or it does not exist yet.
func Search(query string, store *Store, force bool, mode NamingMode) ([]Match, error) {
	rebuild, err := store.ShouldRebuild(force)
	if err != nil {
		return nil, err
	}

	if rebuild {
		slog.Debug("rebuilding index", "root", store.Root, "forced", force)
		if err := store.Rebuild(); err != nil {
			return nil, err
		}
	}

	entries, err := store.Entries()
	if err != nil {
		return nil, err
	}
	return score(query, entries, mode)
}

// score folds the per-term deltas of every query term into a fresh corpus.
func score(query string, entries []Entry, mode NamingMode) ([]Match, error) {
	corpus := LoadCorpus(entries, mode)

	docs := make(map[string][]string, corpus.Len())
	for _, name := range corpus.Names() {
		docs[name] = alg.Tokenize(name)
	}

	for _, term := range alg.Tokenize(query) {
		// Every document contains the empty term, so it would add 0 anyway.
		if term == "" {
			continue
		}

		deltas, err := alg.Deltas(term, docs)
		if err != nil {
			return nil, fmt.Errorf("unable to score term %q: %w", term, err)
		}
		corpus.Apply(deltas)
	}

	var matches []Match
	for _, name := range corpus.Names() {
		doc, _ := corpus.Get(name)
		if doc.Score > 0 {
			matches = append(matches, Match{Name: name, Score: doc.Score, Path: doc.Path})
		}
	}
	return matches, nil
}

// Rank sorts matches by descending score and keeps the first k.
// Ties keep their input order.
func Rank(matches []Match, k int) *Results {
	if k <= 0 {
		k = DefaultMaxResults
	}

	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	results := &Results{Total: len(sorted)}
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	results.Matches = sorted
	return results
}

// Find searches by filename first. If no filename matches, it searches
// again using the full relative path of every file as its name.
func Find(query string, store *Store, opts Options) (*Results, error) {
	matches, err := Search(query, store, opts.Reindex, FilenameOnly)
	if err != nil {
		return nil, err
	}

	broadened := false
	if len(matches) == 0 {
		slog.Debug("no matching names, expanding search", "query", query)

		// The first pass already rebuilt the index if needed.
		matches, err = Search(query, store, false, FullPath)
		if err != nil {
			return nil, err
		}
		broadened = true
	}

	results := Rank(matches, opts.MaxResults)
	results.Broadened = broadened

	if results.Total == 0 && opts.Suggestions > 0 {
		entries, err := store.Entries()
		if err != nil {
			return nil, err
		}
		results.Suggestions = Suggest(query, entries, opts.Suggestions)
	}
	return results, nil
}
