package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/board-search/pkg/openapi"
)

// Route binds a method and pattern to a handler. OpenAPI is the operation
// documented for the route; nil leaves it out of the document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

func register(mux *http.ServeMux, logger *slog.Logger, routes ...Route) {
	for _, r := range routes {
		pattern := r.Method + " " + r.Pattern
		mux.HandleFunc(pattern, r.Handler)
		logger.Debug("api route registered", "pattern", pattern)
	}
}
