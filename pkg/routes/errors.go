package routes

import "errors"

var (
	// ErrInvalidPattern indicates a malformed route path pattern.
	ErrInvalidPattern = errors.New("routes: invalid path pattern")

	// ErrDuplicatePath indicates two entries share the same path shape.
	ErrDuplicatePath = errors.New("routes: duplicate path")

	// ErrDuplicateName indicates two entries share the same name.
	ErrDuplicateName = errors.New("routes: duplicate route name")

	// ErrNilView indicates an entry was registered without a view.
	ErrNilView = errors.New("routes: entry has no view")

	// ErrRouteNotFound indicates no entry is registered under the given name.
	ErrRouteNotFound = errors.New("routes: route not found")

	// ErrMissingParam indicates a required path parameter was absent or empty.
	ErrMissingParam = errors.New("routes: missing required parameter")

	// ErrNoMatch indicates a location matched no entry.
	ErrNoMatch = errors.New("routes: no route matches location")
)
