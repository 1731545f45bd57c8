package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/board-search/pkg/history"
	"rivaas.dev/router"
)

// Router binds a route Table to a navigation-history strategy. Whatever the
// strategy, the server mounts every entry at its path under the base; paths
// maps locations to and from those server paths.
type Router struct {
	table   *Table
	history history.Strategy
	paths   history.Strategy
}

// NewRouter compiles entries into a table bound to h.
func NewRouter(h history.Strategy, entries ...Entry) (*Router, error) {
	if h == nil {
		h = history.NewWebHistory("/")
	}

	t, err := NewTable(entries...)
	if err != nil {
		return nil, err
	}

	return &Router{table: t, history: h, paths: history.NewWebHistory(h.Base())}, nil
}

// Table returns the compiled route table.
func (r *Router) Table() *Table {
	return r.table
}

// History returns the navigation-history strategy.
func (r *Router) History() history.Strategy {
	return r.history
}

// Resolve matches an application location (relative to the history base).
func (r *Router) Resolve(location string) (Match, bool) {
	return r.table.Resolve(location)
}

// ResolveRequest matches the location the history strategy extracts from req.
func (r *Router) ResolveRequest(req *http.Request) (Match, bool) {
	loc := r.history.Location(req)
	if loc == "" {
		return Match{}, false
	}
	return r.table.Resolve(loc)
}

// URLFor builds the application location for the named route.
func (r *Router) URLFor(name string, params Params) (string, error) {
	return r.table.URLFor(name, params)
}

// Href builds the named route's href, including the history base.
func (r *Router) Href(name string, params Params) (string, error) {
	loc, err := r.table.URLFor(name, params)
	if err != nil {
		return "", err
	}
	return r.history.Href(loc), nil
}

// ServerPath renders a location as the path the server mounts it at. For
// web history it equals the href; for hash history it is the href without
// the fragment.
func (r *Router) ServerPath(location string) string {
	return r.paths.Href(location)
}

// ServerHref builds the server path of the named route.
func (r *Router) ServerHref(name string, params Params) (string, error) {
	loc, err := r.table.URLFor(name, params)
	if err != nil {
		return "", err
	}
	return r.paths.Href(loc), nil
}

// Push resolves t and, when the history keeps a stack, appends it.
func (r *Router) Push(t Target) (Match, error) {
	m, err := r.resolveTarget(t)
	if err != nil {
		return Match{}, err
	}
	if rec, ok := r.history.(history.Recorder); ok {
		rec.Push(m.Path)
	}
	return m, nil
}

// Replace resolves t and, when the history keeps a stack, overwrites the
// current entry with it.
func (r *Router) Replace(t Target) (Match, error) {
	m, err := r.resolveTarget(t)
	if err != nil {
		return Match{}, err
	}
	if rec, ok := r.history.(history.Recorder); ok {
		rec.Replace(m.Path)
	}
	return m, nil
}

func (r *Router) resolveTarget(t Target) (Match, error) {
	loc := t.Path
	if loc == "" {
		if t.Name == "" {
			return Match{}, fmt.Errorf("%w: empty target", ErrNoMatch)
		}
		var err error
		if loc, err = r.table.URLFor(t.Name, t.Params); err != nil {
			return Match{}, err
		}
	}

	m, ok := r.table.Resolve(loc)
	if !ok {
		return Match{}, fmt.Errorf("%w: %s", ErrNoMatch, loc)
	}
	return m, nil
}

// Handler mounts every entry as a GET route under the history base on a
// rivaas router. A trailing slash is dropped before matching, as Resolve
// does. Named entries keep their names. Unmatched requests, and
// requests whose parameters are empty, are served by fallback. Requests
// whose escaped path differs from the decoded one (an encoded "/" inside a
// parameter) are resolved against the table instead.
func (r *Router) Handler(fallback http.HandlerFunc, logger *slog.Logger) http.Handler {
	if fallback == nil {
		fallback = http.NotFound
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("system", "routes")

	rr := router.MustNew()
	base := r.history.Base()

	for _, c := range r.table.entries {
		pattern := mountPath(base, c.entry.Path)
		rt := rr.GET(pattern, r.serve(c, fallback, logger))
		if c.entry.Name != "" {
			rt.SetName(c.entry.Name)
		}
		logger.Debug("route mounted", "pattern", pattern, "name", c.entry.Name)
	}

	rr.NoRoute(func(c *router.Context) {
		fallback(c.Response, c.Request)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		req = trimSlash(req)
		if req.URL.RawPath != "" && (req.Method == http.MethodGet || req.Method == http.MethodHead) {
			if loc := r.paths.Location(req); loc != "" {
				if m, ok := r.table.Resolve(loc); ok {
					render(w, req, m.Entry, m.Params, logger)
					return
				}
			}
		}
		rr.ServeHTTP(w, req)
	})
}

func (r *Router) serve(c compiled, fallback http.HandlerFunc, logger *slog.Logger) router.HandlerFunc {
	return func(ctx *router.Context) {
		params := make(Params, len(c.params))
		for _, name := range c.params {
			v := ctx.Param(name)
			if v == "" {
				fallback(ctx.Response, ctx.Request)
				return
			}
			params[name] = v
		}
		render(ctx.Response, ctx.Request, c.entry, params, logger)
	}
}

func render(w http.ResponseWriter, req *http.Request, e Entry, params Params, logger *slog.Logger) {
	if err := e.View.Render(w, req, params); err != nil {
		logger.Error("view render failed", "path", e.Path, "name", e.Name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func mountPath(base, path string) string {
	switch {
	case base == "/":
		return path
	case path == "/":
		return base
	default:
		return base + path
	}
}

// trimSlash drops the trailing slashes of the escaped path. An encoded "/"
// at the end of a parameter is kept.
func trimSlash(req *http.Request) *http.Request {
	escaped := req.URL.EscapedPath()
	n := len(escaped) - len(strings.TrimRight(escaped, "/"))
	if n == 0 || n == len(escaped) {
		return req
	}

	r2 := req.Clone(req.Context())
	r2.URL.Path = req.URL.Path[:len(req.URL.Path)-n]
	if raw := req.URL.RawPath; raw != "" {
		r2.URL.RawPath = raw[:len(raw)-n]
	}
	return r2
}
