package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/abiiranathan/filesearch/cli"
	"github.com/abiiranathan/filesearch/routes"
	"github.com/abiiranathan/filesearch/search"
)

// New returns the http server for searching store, configured by config.
func New(config *cli.Config, store *search.Store) *http.Server {
	// Create a new serveMux
	mux := http.NewServeMux()

	// Connect the routes.
	opts := search.Options{
		MaxResults:  config.MaxResults,
		Suggestions: config.Suggestions,
	}
	routes.SetupRoutes(mux, store, opts, cli.OpenFile, routes.NewMetrics())

	// Create a new http server to customize the timeouts.
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           routes.Logger(os.Stdout)(mux),
		ReadTimeout:       time.Second * 10,
		WriteTimeout:      time.Second * 30,
		ReadHeaderTimeout: time.Second * 5,
	}
}

// Run serves search requests for store until interrupted.
func Run(config *cli.Config, store *search.Store) error {
	server := New(config, store)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on http://0.0.0.0:%d\n", config.Port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server terminated with error: %w", err)
	case <-quit:
	}
	return GracefulShutdown(server)
}

// Gracefully shuts down the server. The default timeout is 10 seconds
// To wait for pending connections.
func GracefulShutdown(server *http.Server, timeout ...time.Duration) error {
	var t time.Duration
	if len(timeout) > 0 {
		t = timeout[0]
	} else {
		t = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), t)
	defer cancel()

	log.Println("Shutting down the server")
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("shutting down gracefully")
	return nil
}
