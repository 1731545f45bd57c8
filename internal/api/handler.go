package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/board-search/internal/corpus"
	"github.com/JaimeStill/board-search/internal/search"
	"github.com/JaimeStill/board-search/pkg/handlers"
	"github.com/JaimeStill/board-search/pkg/routes"
	"github.com/google/uuid"
)

// Searcher is the query surface of the search index.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (search.Results, error)
	Suggest(query string) []string
	Document(id uuid.UUID) (corpus.Document, error)
}

// RouteInfo describes one entry of the application route table.
type RouteInfo struct {
	Path   string   `json:"path"`
	Name   string   `json:"name,omitempty"`
	Params []string `json:"params"`
}

// Suggestions is the response of the suggest endpoint.
type Suggestions struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Handler serves the JSON search API.
type Handler struct {
	searcher Searcher
	table    *routes.Table
	logger   *slog.Logger
}

// NewHandler creates the API handler. table is reported by the routes
// endpoint.
func NewHandler(searcher Searcher, table *routes.Table, logger *slog.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		table:    table,
		logger:   logger,
	}
}

// Routes returns the API endpoints relative to the module prefix.
func (h *Handler) Routes() []Route {
	return []Route{
		{Method: "GET", Pattern: "/search", Handler: h.Search, OpenAPI: searchOp},
		{Method: "GET", Pattern: "/suggest", Handler: h.Suggest, OpenAPI: suggestOp},
		{Method: "GET", Pattern: "/documents/{id}", Handler: h.Document, OpenAPI: documentOp},
		{Method: "GET", Pattern: "/routes", Handler: h.RouteTable, OpenAPI: routesOp},
	}
}

// Search handles GET /api/search?q=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid limit: %q", v))
			return
		}
		limit = n
	}

	res, err := h.searcher.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		handlers.RespondError(w, h.logger, statusFor(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, res)
}

// Suggest handles GET /api/suggest?q=.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	suggestions := h.searcher.Suggest(q)
	if suggestions == nil {
		suggestions = []string{}
	}

	handlers.RespondJSON(w, http.StatusOK, Suggestions{Query: q, Suggestions: suggestions})
}

// Document handles GET /api/documents/{id}.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.searcher.Document(id)
	if err != nil {
		handlers.RespondError(w, h.logger, statusFor(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// RouteTable handles GET /api/routes.
func (h *Handler) RouteTable(w http.ResponseWriter, r *http.Request) {
	entries := h.table.Entries()
	out := make([]RouteInfo, len(entries))
	for i, e := range entries {
		params := h.table.ParamNames(e.Path)
		if params == nil {
			params = []string{}
		}
		out[i] = RouteInfo{Path: e.Path, Name: e.Name, Params: params}
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, corpus.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, search.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
