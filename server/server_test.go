package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abiiranathan/filesearch/cli"
	"github.com/abiiranathan/filesearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "todo.txt"), nil, 0o644))

	config := cli.DefaultConfig
	config.Port = 9123
	store := search.NewStore(t.TempDir(), root)

	srv := New(&config, store)
	assert.Equal(t, ":9123", srv.Addr)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/search?query=notes")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"path":"notes.md"`)
}

func TestGracefulShutdownIdleServer(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0"}
	assert.NoError(t, GracefulShutdown(srv, time.Second))
}
