package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bbalet/stopwords"
)

// Suggest returns up to limit distinct filenames closest to query by
// Levenshtein distance. Only names closer than min(len(query), 10) qualify.
func Suggest(query string, entries []Entry, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	threshold := min(len(query), 10)
	if threshold == 0 || limit <= 0 {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}

	seen := make(map[string]struct{}, len(entries))
	candidates := make([]candidate, 0)
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}

		distance := stopwords.LevenshteinDistance(
			[]byte(strings.ToLower(e.Name)), []byte(query), "en", false)
		if distance < threshold {
			candidates = append(candidates, candidate{name: e.Name, distance: distance})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.name, b.name))
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
