// Package history provides navigation-history strategies for the route table.
// A strategy knows the base path the application is served under, how to
// extract an application location from an incoming request, and how to render
// a location as an href.
package history

import (
	"fmt"
	"net/http"
	"strings"
)

// Mode identifies a navigation-history strategy.
type Mode string

const (
	// ModeWeb tracks locations with real browser history (the URL path).
	ModeWeb Mode = "web"

	// ModeHash tracks locations in the URL fragment.
	ModeHash Mode = "hash"

	// ModeMemory tracks locations in an in-process stack.
	ModeMemory Mode = "memory"
)

// Validate checks if the mode is a known history mode.
func (m Mode) Validate() error {
	switch m {
	case ModeWeb, ModeHash, ModeMemory:
		return nil
	default:
		return fmt.Errorf("invalid history mode: %s (must be web, hash, or memory)", m)
	}
}

// Strategy maps between requests, application locations, and hrefs.
type Strategy interface {
	Mode() Mode
	Base() string
	Location(r *http.Request) string
	Href(location string) string
}

// Recorder is implemented by strategies that keep their own navigation stack.
type Recorder interface {
	Push(location string)
	Replace(location string)
	Back() (string, bool)
	Forward() (string, bool)
	Current() string
	Len() int
}

// Parse builds the strategy for the given mode and base path.
func Parse(mode Mode, base string) (Strategy, error) {
	switch mode {
	case ModeWeb, "":
		return NewWebHistory(base), nil
	case ModeHash:
		return NewHashHistory(base), nil
	case ModeMemory:
		return NewMemoryHistory(base), nil
	default:
		return nil, mode.Validate()
	}
}

// NormalizeBase returns base with a leading slash and without a trailing one.
// The empty base and "/" both normalize to "/".
func NormalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" || base == "/" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return strings.TrimRight(base, "/")
}

// join prefixes location with base, avoiding a doubled slash at the seam.
func join(base, location string) string {
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	if base == "/" {
		return location
	}
	return base + location
}

type web struct {
	base string
}

// NewWebHistory creates a strategy backed by real browser history. Locations
// are the request path relative to base.
func NewWebHistory(base string) Strategy {
	return &web{base: NormalizeBase(base)}
}

func (h *web) Mode() Mode   { return ModeWeb }
func (h *web) Base() string { return h.base }

func (h *web) Location(r *http.Request) string {
	path := r.URL.EscapedPath()
	if h.base != "/" {
		if path != h.base && !strings.HasPrefix(path, h.base+"/") {
			return ""
		}
		path = strings.TrimPrefix(path, h.base)
	}
	if path == "" {
		return "/"
	}
	return path
}

func (h *web) Href(location string) string {
	return join(h.base, location)
}

type hash struct {
	base string
}

// NewHashHistory creates a strategy that keeps the location in the URL
// fragment. The server only ever sees the base document.
func NewHashHistory(base string) Strategy {
	return &hash{base: NormalizeBase(base)}
}

func (h *hash) Mode() Mode   { return ModeHash }
func (h *hash) Base() string { return h.base }

func (h *hash) Location(r *http.Request) string {
	if f := r.URL.Fragment; f != "" {
		if !strings.HasPrefix(f, "/") {
			return "/" + f
		}
		return f
	}
	return "/"
}

func (h *hash) Href(location string) string {
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	if h.base == "/" {
		return "/#" + location
	}
	return h.base + "/#" + location
}
