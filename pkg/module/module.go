// Package module mounts self-contained HTTP handlers under path prefixes.
// A module owns everything below its prefix, receives requests with the
// prefix stripped, and carries its own middleware chain.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an http.Handler mounted under a single-level prefix such as
// "/api". The prefix "/" mounts the module at the root as the catch-all.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module. It panics if prefix is not "/" or a single-level
// path like "/api".
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered middleware runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler wrapped in its middleware chain.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	if m.prefix == "/" {
		m.Handler().ServeHTTP(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = path
	if r.URL.RawPath != "" {
		raw := strings.TrimPrefix(r.URL.RawPath, m.prefix)
		if raw == "" {
			raw = "/"
		}
		r2.URL.RawPath = raw
	}

	m.Handler().ServeHTTP(w, r2)
}

func validatePrefix(prefix string) error {
	if prefix == "/" {
		return nil
	}
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %q", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level: %q", prefix)
	}
	return nil
}
