package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/board-search/internal/config"
	"github.com/JaimeStill/board-search/internal/infrastructure"
	"github.com/JaimeStill/board-search/internal/search"
	"github.com/JaimeStill/board-search/pkg/module"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageShuttle = "Campus shuttle schedule\n[url]: https://example.edu/shuttle\nThe shuttle runs every ten minutes.\n"
const pageLibrary = "Library hours\n[url]: https://example.edu/library\nThe library opens at eight.\n"

func newTestInfra(t *testing.T, basePath string) (*infrastructure.Infrastructure, *config.Config) {
	t.Helper()

	root := t.TempDir()
	pages := filepath.Join(root, "pages")
	require.NoError(t, os.Mkdir(pages, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pages, "shuttle.txt"), []byte(pageShuttle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pages, "library.txt"), []byte(pageLibrary), 0o644))

	toml := "[corpus]\npages_dir = \"" + filepath.ToSlash(pages) + "\"\n\n[app]\nbase_path = \"" + basePath + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, config.BaseConfigFile), []byte(toml), 0o644))

	cfg, err := config.LoadDir(root)
	require.NoError(t, err)

	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()) })

	return infra, cfg
}

func newTestRouter(t *testing.T, basePath string) (*module.Router, *infrastructure.Infrastructure) {
	t.Helper()
	infra, cfg := newTestInfra(t, basePath)

	modules, err := NewModules(infra, cfg)
	require.NoError(t, err)

	router := buildRouter(infra)
	modules.Mount(router)
	return router, infra
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouter_Readiness(t *testing.T) {
	router, infra := newTestRouter(t, "/")

	assert.Equal(t, http.StatusOK, get(router, "/healthz").Code)

	w := get(router, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "NOT READY", w.Body.String())

	require.NoError(t, infra.Start())
	infra.Lifecycle.WaitForStartup()

	w = get(router, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}

func TestRouter_ServesApiAndPortal(t *testing.T) {
	router, infra := newTestRouter(t, "/")
	require.NoError(t, infra.Start())
	infra.Lifecycle.WaitForStartup()

	w := get(router, "/api/search?q=shuttle")
	require.Equal(t, http.StatusOK, w.Code)

	var results search.Results
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	require.Equal(t, 1, results.Total)
	assert.Equal(t, "Campus shuttle schedule", results.Hits[0].Title)
	assert.Equal(t, "https://example.edu/shuttle", results.Hits[0].URL)

	w = get(router, "/result/library")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Library hours")

	assert.Equal(t, http.StatusOK, get(router, "/").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/about").Code)
}

func TestRouter_PortalUnderBase(t *testing.T) {
	router, infra := newTestRouter(t, "/portal")
	require.NoError(t, infra.Start())
	infra.Lifecycle.WaitForStartup()

	w := get(router, "/portal/result/shuttle")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Campus shuttle schedule")

	w = get(router, "/api/routes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "/result/:query"))
}

func TestServer_Reload(t *testing.T) {
	infra, cfg := newTestInfra(t, "/")
	srv, err := newServer(cfg, infra)
	require.NoError(t, err)

	assert.False(t, infra.Index.Ready())
	srv.Reload()
	assert.True(t, infra.Index.Ready())
	assert.Equal(t, 2, infra.Index.Engine().Len())
}
