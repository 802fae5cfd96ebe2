package routes

import (
	"net/http"

	"github.com/abiiranathan/filesearch/search"
)

func SetupRoutes(mux *http.ServeMux, store *search.Store, opts search.Options,
	open func(path string) error, metrics *Metrics) {
	// Search endpoint
	mux.HandleFunc("GET /search", Search(store, opts, metrics))

	// Open a result with the desktop application if on localhost or serve it
	mux.HandleFunc("GET /open", OpenDocument(store.Root, open))

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())
}
