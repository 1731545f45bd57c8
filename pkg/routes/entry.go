// Package routes provides a declarative route table that binds URL path
// patterns to views. The table resolves locations to views with their
// extracted path parameters, builds URLs from route names, and mounts itself
// onto an HTTP router for dispatch.
package routes

import "net/http"

// Params holds path parameter values keyed by parameter name.
type Params map[string]string

// View is a renderable unit mounted by a route entry.
type View interface {
	Render(w http.ResponseWriter, r *http.Request, params Params) error
}

// ViewFunc adapts an ordinary function to the View interface.
type ViewFunc func(w http.ResponseWriter, r *http.Request, params Params) error

// Render calls f(w, r, params).
func (f ViewFunc) Render(w http.ResponseWriter, r *http.Request, params Params) error {
	return f(w, r, params)
}

// Entry binds a path pattern to a view. Segments of the form ":name" are
// named parameters. Name is optional and enables reverse routing.
type Entry struct {
	Path string
	Name string
	View View
}

// Match is the result of resolving a location: the entry to mount and the
// parameters extracted from the location.
type Match struct {
	Entry  Entry
	Params Params
	Path   string
}

// Param returns the named parameter value, or "" when absent.
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Target is a navigation target. Path takes precedence; otherwise the target
// is resolved by Name and Params.
type Target struct {
	Path   string
	Name   string
	Params Params
}
