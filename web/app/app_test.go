package app_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/board-search/internal/search"
	"github.com/JaimeStill/board-search/pkg/history"
	"github.com/JaimeStill/board-search/pkg/routes"
	"github.com/JaimeStill/board-search/web/app"
)

type stubSearcher struct {
	hits        map[string][]search.Hit
	suggestions []string
	err         error
	queries     []string
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int) (search.Results, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return search.Results{}, s.err
	}
	hits := s.hits[query]
	return search.Results{Query: query, Total: len(hits), Hits: hits}, nil
}

func (s *stubSearcher) Suggest(string) []string {
	return s.suggestions
}

func newSearcher() *stubSearcher {
	return &stubSearcher{
		hits: map[string][]search.Hit{
			"核酸": {{Title: "核酸检测通知", URL: "https://board.example/1", Snippet: "完成核酸检测"}},
			"foo":  {{Title: "Foo notice", Snippet: "foo"}},
		},
		suggestions: []string{"library"},
	}
}

func newApp(t *testing.T, base string, s app.Searcher) *app.App {
	t.Helper()
	a, err := app.New(history.NewWebHistory(base), s, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func get(a *app.App, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Module().Serve(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestEntries(t *testing.T) {
	view := routes.ViewFunc(func(w http.ResponseWriter, r *http.Request, p routes.Params) error { return nil })
	entries := app.Entries(view, view)

	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Path != "/" || entries[0].Name != "" {
		t.Errorf("entries[0] = %q/%q", entries[0].Path, entries[0].Name)
	}
	if entries[1].Path != "/result/:query" || entries[1].Name != app.ResultRoute {
		t.Errorf("entries[1] = %q/%q", entries[1].Path, entries[1].Name)
	}
}

func TestApp_Pages(t *testing.T) {
	a := newApp(t, "/", newSearcher())

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"entrance", "/", http.StatusOK, `action="/search"`},
		{"result", "/result/foo", http.StatusOK, "Foo notice"},
		{"result han", "/result/%E6%A0%B8%E9%85%B8", http.StatusOK, "https://board.example/1"},
		{"result suggestions", "/result/librery", http.StatusOK, `href="/result/library"`},
		{"empty parameter", "/result/", http.StatusNotFound, "Page not found"},
		{"unregistered", "/about", http.StatusNotFound, "Page not found"},
		{"stylesheet", "/dist/app.css", http.StatusOK, "search-form"},
		{"robots", "/robots.txt", http.StatusOK, "User-agent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(a, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestApp_ResultPassesDecodedQuery(t *testing.T) {
	s := newSearcher()
	a := newApp(t, "/", s)

	get(a, "/result/foo%20bar")
	get(a, "/result/a%2Fb")

	want := []string{"foo bar", "a/b"}
	if len(s.queries) != len(want) {
		t.Fatalf("queries = %q, want %q", s.queries, want)
	}
	for i := range want {
		if s.queries[i] != want[i] {
			t.Errorf("queries[%d] = %q, want %q", i, s.queries[i], want[i])
		}
	}
}

func TestApp_SearchRedirect(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"query", "/", "/search?q=foo", "/result/foo"},
		{"escaped", "/", "/search?q=foo+bar", "/result/foo%20bar"},
		{"slash", "/", "/search?q=a%2Fb", "/result/a%2Fb"},
		{"blank", "/", "/search?q=++", "/"},
		{"under base", "/portal", "/portal/search?q=foo", "/portal/result/foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newApp(t, tt.base, newSearcher()), tt.target)
			if w.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestApp_UnderBase(t *testing.T) {
	a := newApp(t, "/portal", newSearcher())

	if w := get(a, "/portal/result/foo"); w.Code != http.StatusOK {
		t.Errorf("result status = %d, want 200", w.Code)
	}
	if w := get(a, "/portal"); !strings.Contains(w.Body.String(), `action="/portal/search"`) {
		t.Errorf("entrance missing form action: %s", w.Body.String())
	}
	if w := get(a, "/portal/dist/app.css"); w.Code != http.StatusOK {
		t.Errorf("stylesheet status = %d, want 200", w.Code)
	}
	if w := get(a, "/result/foo"); w.Code != http.StatusNotFound {
		t.Errorf("result outside base status = %d, want 404", w.Code)
	}

	href, err := a.Router().Href(app.ResultRoute, routes.Params{"query": "foo"})
	if err != nil || href != "/portal/result/foo" {
		t.Errorf("Href() = %q, %v", href, err)
	}
}

func TestApp_NotReady(t *testing.T) {
	s := newSearcher()
	s.err = search.ErrNotReady

	w := get(newApp(t, "/", s), "/result/foo")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestApp_SecurityHeaders(t *testing.T) {
	w := get(newApp(t, "/", newSearcher()), "/")
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("headers = %v", w.Header())
	}
}

func TestApp_HashHistoryReachesResults(t *testing.T) {
	a, err := app.New(history.NewHashHistory("/"), newSearcher(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	w := get(a, "/search?q=foo")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	loc := w.Header().Get("Location")
	if loc != "/result/foo" {
		t.Fatalf("Location = %q, want /result/foo", loc)
	}

	w = get(a, loc)
	if w.Code != http.StatusOK {
		t.Fatalf("result status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "Foo notice") {
		t.Errorf("redirect target did not render results: %s", body)
	}

	w = get(a, "/result/zzz")
	if body := w.Body.String(); !strings.Contains(body, `href="/result/library"`) || strings.Contains(body, "#/result") {
		t.Errorf("suggestion links are not server paths: %s", body)
	}

	href, err := a.Router().Href(app.ResultRoute, routes.Params{"query": "foo"})
	if err != nil || href != "/#/result/foo" {
		t.Errorf("Href() = %q, %v, want client href /#/result/foo", href, err)
	}
}
