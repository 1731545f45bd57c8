package routes

import (
	"fmt"
	"net/url"
	"strings"

	"rivaas.dev/router/route"
)

type compiled struct {
	entry   Entry
	pattern *route.ReversePattern
	params  []string
}

// Table is an immutable, ordered set of route entries. It is safe for
// concurrent use once constructed.
type Table struct {
	entries []compiled
	byName  map[string]int
}

// NewTable compiles the entries in order. Patterns must be unique by shape,
// so "/result/:query" and "/result/:q" conflict, and names must be unique.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]compiled, 0, len(entries)),
		byName:  make(map[string]int),
	}

	shapes := make(map[string]string, len(entries))

	for _, e := range entries {
		if e.View == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilView, e.Path)
		}

		params, err := validatePattern(e.Path)
		if err != nil {
			return nil, err
		}

		pattern := route.ParseReversePattern(e.Path)

		key := shape(pattern)
		if prev, ok := shapes[key]; ok {
			return nil, fmt.Errorf("%w: %s conflicts with %s", ErrDuplicatePath, e.Path, prev)
		}
		shapes[key] = e.Path

		if e.Name != "" {
			if _, ok := t.byName[e.Name]; ok {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateName, e.Name)
			}
			t.byName[e.Name] = len(t.entries)
		}

		t.entries = append(t.entries, compiled{
			entry:   e,
			pattern: pattern,
			params:  params,
		})
	}

	return t, nil
}

// Entries returns the entries in registration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, c := range t.entries {
		out[i] = c.entry
	}
	return out
}

// ParamNames returns the parameter names declared by the entry at path.
func (t *Table) ParamNames(path string) []string {
	for _, c := range t.entries {
		if c.entry.Path == path {
			return append([]string(nil), c.params...)
		}
	}
	return nil
}

// Lookup returns the entry registered under name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i].entry, true
}

// Resolve matches location against the entries in registration order.
// Query and fragment are ignored, each path segment is URL-decoded, and a
// single trailing slash is tolerated. Parameter segments never match an empty
// value, so "/result/" matches nothing.
func (t *Table) Resolve(location string) (Match, bool) {
	parts, ok := splitLocation(location)
	if !ok {
		return Match{}, false
	}

	for _, c := range t.entries {
		if params, ok := c.match(parts); ok {
			path, err := c.pattern.BuildURL(params, nil)
			if err != nil {
				continue
			}
			return Match{Entry: c.entry, Params: params, Path: path}, true
		}
	}

	return Match{}, false
}

// URLFor builds the path for the named route. Every parameter the pattern
// declares must be present and non-empty; values are path-escaped.
func (t *Table) URLFor(name string, params Params) (string, error) {
	i, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	c := t.entries[i]
	for _, p := range c.params {
		if params[p] == "" {
			return "", fmt.Errorf("%w: %s requires %s", ErrMissingParam, name, p)
		}
	}

	return c.pattern.BuildURL(params, nil)
}

func (c compiled) match(parts []string) (Params, bool) {
	segments := c.pattern.Segments
	if len(segments) != len(parts) {
		return nil, false
	}

	params := make(Params, len(c.params))
	for i, seg := range segments {
		value, err := url.PathUnescape(parts[i])
		if err != nil {
			return nil, false
		}

		if seg.Static {
			if value != seg.Value {
				return nil, false
			}
			continue
		}

		if value == "" {
			return nil, false
		}
		params[seg.Value] = value
	}

	return params, true
}

func validatePattern(path string) ([]string, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, path)
	}
	if path == "/" {
		return nil, nil
	}

	var params []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(path[1:], "/") {
		if part == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, path)
		}
		if !strings.HasPrefix(part, ":") {
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, path)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q repeats parameter %s", ErrInvalidPattern, path, name)
		}
		seen[name] = true
		params = append(params, name)
	}

	return params, nil
}

func shape(p *route.ReversePattern) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteByte('/')
		if seg.Static {
			b.WriteString(seg.Value)
		} else {
			b.WriteByte(':')
		}
	}
	return b.String()
}

func splitLocation(location string) ([]string, bool) {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	if location == "" {
		location = "/"
	}
	if !strings.HasPrefix(location, "/") {
		return nil, false
	}

	if strings.HasPrefix(location[1:], "/") {
		return nil, false
	}

	trimmed := strings.TrimSuffix(location[1:], "/")
	if trimmed == "" {
		return nil, true
	}
	return strings.Split(trimmed, "/"), true
}
