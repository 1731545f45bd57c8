// Package api exposes the search index as a JSON API module.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/board-search/pkg/handlers"
	"github.com/JaimeStill/board-search/pkg/middleware"
	"github.com/JaimeStill/board-search/pkg/module"
	"github.com/JaimeStill/board-search/pkg/openapi"
	"github.com/JaimeStill/board-search/pkg/routes"
)

// Prefix is the mount point of the API module.
const Prefix = "/api"

// NewModule builds the API module mounted at Prefix. version is reported in
// the OpenAPI document served at /api/openapi.json.
func NewModule(searcher Searcher, table *routes.Table, version string, logger *slog.Logger) (*module.Module, error) {
	logger = logger.With("module", "api")
	h := NewHandler(searcher, table, logger)
	apiRoutes := h.Routes()

	doc, err := openapi.MarshalJSON(Spec(version, apiRoutes))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi: %w", err)
	}

	mux := http.NewServeMux()
	register(mux, logger, apiRoutes...)
	register(mux, logger, Route{Method: "GET", Pattern: "/openapi.json", Handler: openapi.Handler(doc)})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusNotFound, handlers.ErrorResponse{Error: "endpoint not found"})
	})

	m := module.New(Prefix, mux)
	m.Use(middleware.Logger(logger))
	m.Use(middleware.Recover(logger, false))
	return m, nil
}
