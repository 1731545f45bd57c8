package routes_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/JaimeStill/board-search/pkg/routes"
)

func nopView() routes.View {
	return routes.ViewFunc(func(w http.ResponseWriter, r *http.Request, p routes.Params) error {
		return nil
	})
}

func searchTable(t *testing.T) *routes.Table {
	t.Helper()
	table, err := routes.NewTable(
		routes.Entry{Path: "/", View: nopView()},
		routes.Entry{Path: "/result/:query", Name: "Result", View: nopView()},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []routes.Entry
		wantErr error
	}{
		{
			name:    "no leading slash",
			entries: []routes.Entry{{Path: "result/:query", View: nopView()}},
			wantErr: routes.ErrInvalidPattern,
		},
		{
			name:    "empty segment",
			entries: []routes.Entry{{Path: "/result//:query", View: nopView()}},
			wantErr: routes.ErrInvalidPattern,
		},
		{
			name:    "trailing slash",
			entries: []routes.Entry{{Path: "/result/", View: nopView()}},
			wantErr: routes.ErrInvalidPattern,
		},
		{
			name:    "unnamed parameter",
			entries: []routes.Entry{{Path: "/result/:", View: nopView()}},
			wantErr: routes.ErrInvalidPattern,
		},
		{
			name:    "repeated parameter",
			entries: []routes.Entry{{Path: "/a/:id/b/:id", View: nopView()}},
			wantErr: routes.ErrInvalidPattern,
		},
		{
			name: "duplicate path",
			entries: []routes.Entry{
				{Path: "/result/:query", View: nopView()},
				{Path: "/result/:q", View: nopView()},
			},
			wantErr: routes.ErrDuplicatePath,
		},
		{
			name: "duplicate name",
			entries: []routes.Entry{
				{Path: "/", Name: "Result", View: nopView()},
				{Path: "/result/:query", Name: "Result", View: nopView()},
			},
			wantErr: routes.ErrDuplicateName,
		},
		{
			name:    "nil view",
			entries: []routes.Entry{{Path: "/"}},
			wantErr: routes.ErrNilView,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := routes.NewTable(tt.entries...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTable_Entries(t *testing.T) {
	table := searchTable(t)
	entries := table.Entries()

	if len(entries) != 2 {
		t.Fatalf("Entries() len = %d, want 2", len(entries))
	}
	if entries[0].Path != "/" || entries[0].Name != "" {
		t.Errorf("entries[0] = %q/%q, want / with no name", entries[0].Path, entries[0].Name)
	}
	if entries[1].Path != "/result/:query" || entries[1].Name != "Result" {
		t.Errorf("entries[1] = %q/%q, want /result/:query named Result", entries[1].Path, entries[1].Name)
	}

	entries[0].Path = "/mutated"
	if table.Entries()[0].Path != "/" {
		t.Error("Entries() exposed internal state")
	}

	names := table.ParamNames("/result/:query")
	if len(names) != 1 || names[0] != "query" {
		t.Errorf("ParamNames() = %v, want [query]", names)
	}
}

func TestTable_Resolve(t *testing.T) {
	table := searchTable(t)

	tests := []struct {
		name      string
		location  string
		wantPath  string
		wantName  string
		wantQuery string
		wantOK    bool
	}{
		{"root", "/", "/", "", "", true},
		{"empty location", "", "/", "", "", true},
		{"root with query string", "/?q=x", "/", "", "", true},
		{"result", "/result/foo", "/result/:query", "Result", "foo", true},
		{"result trailing slash", "/result/foo/", "/result/:query", "Result", "foo", true},
		{"result decoded", "/result/foo%20bar", "/result/:query", "Result", "foo bar", true},
		{"result encoded slash", "/result/a%2Fb", "/result/:query", "Result", "a/b", true},
		{"result unicode", "/result/%E6%A0%B8%E9%85%B8", "/result/:query", "Result", "核酸", true},
		{"result with fragment", "/result/foo#top", "/result/:query", "Result", "foo", true},
		{"empty parameter", "/result/", "", "", "", false},
		{"double slash parameter", "/result//", "", "", "", false},
		{"double slash root", "//", "", "", "", false},
		{"empty leading segment", "//result/foo", "", "", "", false},
		{"bare prefix", "/result", "", "", "", false},
		{"extra segment", "/result/foo/bar", "", "", "", false},
		{"unregistered", "/about", "", "", "", false},
		{"case sensitive", "/Result/foo", "", "", "", false},
		{"relative", "result/foo", "", "", "", false},
		{"bad escape", "/result/%zz", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := table.Resolve(tt.location)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.location, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if m.Entry.Path != tt.wantPath {
				t.Errorf("Entry.Path = %q, want %q", m.Entry.Path, tt.wantPath)
			}
			if m.Entry.Name != tt.wantName {
				t.Errorf("Entry.Name = %q, want %q", m.Entry.Name, tt.wantName)
			}
			if got := m.Param("query"); got != tt.wantQuery {
				t.Errorf("Param(query) = %q, want %q", got, tt.wantQuery)
			}
		})
	}
}

func TestTable_ResolveRootHasNoParams(t *testing.T) {
	m, ok := searchTable(t).Resolve("/")
	if !ok {
		t.Fatal("Resolve(/) did not match")
	}
	if len(m.Params) != 0 {
		t.Errorf("Params = %v, want none", m.Params)
	}
}

func TestTable_Lookup(t *testing.T) {
	table := searchTable(t)

	e, ok := table.Lookup("Result")
	if !ok {
		t.Fatal("Lookup(Result) not found")
	}
	if e.Path != "/result/:query" {
		t.Errorf("Path = %q, want /result/:query", e.Path)
	}

	if _, ok := table.Lookup("Home"); ok {
		t.Error("Lookup(Home) found an unnamed route")
	}
}

func TestTable_URLFor(t *testing.T) {
	table := searchTable(t)

	tests := []struct {
		name    string
		route   string
		params  routes.Params
		want    string
		wantErr error
	}{
		{"simple", "Result", routes.Params{"query": "foo"}, "/result/foo", nil},
		{"escaped space", "Result", routes.Params{"query": "foo bar"}, "/result/foo%20bar", nil},
		{"escaped slash", "Result", routes.Params{"query": "a/b"}, "/result/a%2Fb", nil},
		{"missing", "Result", nil, "", routes.ErrMissingParam},
		{"empty", "Result", routes.Params{"query": ""}, "", routes.ErrMissingParam},
		{"unknown", "About", nil, "", routes.ErrRouteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.URLFor(tt.route, tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("URLFor() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("URLFor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("URLFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTable_URLForRoundTrip(t *testing.T) {
	table := searchTable(t)

	for _, query := range []string{"foo", "粤海校区", "a/b", "100% sure?"} {
		t.Run(query, func(t *testing.T) {
			path, err := table.URLFor("Result", routes.Params{"query": query})
			if err != nil {
				t.Fatalf("URLFor() error = %v", err)
			}

			m, ok := table.Resolve(path)
			if !ok {
				t.Fatalf("Resolve(%q) did not match", path)
			}
			if m.Entry.Name != "Result" {
				t.Errorf("Entry.Name = %q, want Result", m.Entry.Name)
			}
			if m.Param("query") != query {
				t.Errorf("Param(query) = %q, want %q", m.Param("query"), query)
			}
			if m.Path != path {
				t.Errorf("Match.Path = %q, want %q", m.Path, path)
			}
		})
	}
}

func TestTable_RegistrationOrder(t *testing.T) {
	table, err := routes.NewTable(
		routes.Entry{Path: "/result/latest", Name: "Latest", View: nopView()},
		routes.Entry{Path: "/result/:query", Name: "Result", View: nopView()},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	m, ok := table.Resolve("/result/latest")
	if !ok || m.Entry.Name != "Latest" {
		t.Errorf("Resolve(/result/latest) = %q, want Latest", m.Entry.Name)
	}
}
