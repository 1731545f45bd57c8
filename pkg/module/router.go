package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment,
// then to natively registered routes, then to the root module if one is
// mounted. Trailing slashes are trimmed before dispatch.
type Router struct {
	modules map[string]*Module
	root    *Module
	native  *http.ServeMux
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a ServeMux pattern outside any module.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix. A later module with the same prefix
// replaces the earlier one.
func (r *Router) Mount(m *Module) {
	if m.prefix == "/" {
		r.root = m
		return
	}
	r.modules[m.prefix] = m
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = normalize(req)

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	if r.root != nil {
		if _, pattern := r.native.Handler(req); pattern == "" {
			r.root.Serve(w, req)
			return
		}
	}

	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	if len(path) < 2 {
		return path
	}
	if i := strings.IndexByte(path[1:], '/'); i >= 0 {
		return path[:i+1]
	}
	return path
}

// normalize drops the trailing slashes of the escaped path from both Path
// and RawPath. An encoded "/" ending the path is data and is kept.
func normalize(req *http.Request) *http.Request {
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
