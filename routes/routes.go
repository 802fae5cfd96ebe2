package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/abiiranathan/filesearch/search"
)

type Result struct {
	Name  string  `json:"name"`
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

type SearchResponse struct {
	Total       int      `json:"total"`
	Broadened   bool     `json:"broadened"`
	Results     []Result `json:"results"`
	Suggestions []string `json:"suggestions"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newSearchResponse(results *search.Results) SearchResponse {
	resp := SearchResponse{
		Total:       results.Total,
		Broadened:   results.Broadened,
		Results:     make([]Result, 0, len(results.Matches)),
		Suggestions: results.Suggestions,
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}

	for _, m := range results.Matches {
		resp.Results = append(resp.Results, Result{
			Name:  m.Name,
			Path:  m.DisplayPath(),
			Score: m.Score,
		})
	}
	return resp
}

// Search runs the query parameter against store.
// reindex=1 rebuilds the index first.
func Search(store *search.Store, opts search.Options, metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if strings.TrimSpace(query) == "" {
			// Send an empty slice.
			writeJSON(w, http.StatusOK, []string{})
			return
		}

		o := opts
		o.Reindex = r.URL.Query().Get("reindex") == "1"

		start := time.Now()
		results, err := search.Find(query, store, o)
		took := time.Since(start)
		if err != nil {
			metrics.Observe(OutcomeError, took, 0)

			status := http.StatusInternalServerError
			if errors.Is(err, search.ErrCorruptIndex) {
				status = http.StatusServiceUnavailable
			}
			writeJSON(w, status, map[string]string{"message": err.Error()})
			return
		}

		outcome := OutcomeHit
		switch {
		case results.Total == 0:
			outcome = OutcomeZero
		case results.Broadened:
			outcome = OutcomeBroadened
		}
		metrics.Observe(outcome, took, results.Total)

		writeJSON(w, http.StatusOK, newSearchResponse(results))
	}
}

// insideRoot reports whether path is root or below it.
func insideRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isLocalhost reports whether the connection comes from a loopback address.
// The Host header is set by the client and is not consulted.
func isLocalhost(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// OpenDocument opens the file at the relative path parameter with open if the
// request comes from localhost, and serves it otherwise.
func OpenDocument(root string, open func(path string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := r.URL.Query().Get("path")
		if rel == "" {
			http.Error(w, "Missing path", http.StatusBadRequest)
			return
		}

		path := filepath.Join(filepath.FromSlash(root), filepath.FromSlash(rel))
		if !insideRoot(filepath.FromSlash(root), path) {
			http.Error(w, "Invalid path: outside the indexed directory", http.StatusBadRequest)
			return
		}

		if !isLocalhost(r.RemoteAddr) {
			http.ServeFile(w, r, path)
			return
		}

		if err := open(path); err != nil {
			log.Println(err)
			http.ServeFile(w, r, path)
			return
		}

		if ref := r.Referer(); ref != "" {
			http.Redirect(w, r, ref, http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
