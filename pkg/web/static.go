package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"path"
	"time"
)

// StaticRoute is a GET route serving a single embedded file.
type StaticRoute struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// DistServer serves files under subdir of fsys at urlPrefix.
func DistServer(fsys fs.FS, subdir, urlPrefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return http.NotFound
	}
	return http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub))).ServeHTTP
}

// PublicFile serves subdir/name from fsys.
func PublicFile(fsys fs.FS, subdir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, path.Join(subdir, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	}
}

// PublicFileRoutes returns a root-level GET route for each file name.
func PublicFileRoutes(fsys fs.FS, subdir string, names ...string) []StaticRoute {
	routes := make([]StaticRoute, 0, len(names))
	for _, name := range names {
		routes = append(routes, StaticRoute{
			Method:  "GET",
			Pattern: "/" + name,
			Handler: PublicFile(fsys, subdir, name),
		})
	}
	return routes
}

// ServeEmbeddedFile serves data with a fixed content type.
func ServeEmbeddedFile(data []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}
