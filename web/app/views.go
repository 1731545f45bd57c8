package app

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/board-search/internal/search"
	"github.com/JaimeStill/board-search/pkg/routes"
	"github.com/JaimeStill/board-search/pkg/web"
)

type formData struct {
	Action string
	Query  string
}

type suggestion struct {
	Word string
	Href string
}

type resultPage struct {
	formData
	Results     search.Results
	Suggestions []suggestion
}

type views struct {
	templates *web.TemplateSet
	router    *routes.Router
	searcher  Searcher
	logger    *slog.Logger
}

func (v *views) form(query string) formData {
	return formData{Action: v.templates.BasePath() + "/search", Query: query}
}

func (v *views) entrance(w http.ResponseWriter, r *http.Request, _ routes.Params) error {
	return v.templates.Render(w, http.StatusOK, layout, entranceView, v.form(""))
}

func (v *views) result(w http.ResponseWriter, r *http.Request, p routes.Params) error {
	query := p["query"]
	page := resultPage{formData: v.form(query)}

	res, err := v.searcher.Search(r.Context(), query, 0)
	switch {
	case errors.Is(err, search.ErrNotReady):
		return v.templates.Render(w, http.StatusServiceUnavailable, layout, unavailableView, nil)
	case errors.Is(err, search.ErrEmptyQuery):
		res = search.Results{Query: query}
	case err != nil:
		return err
	}
	page.Results = res

	if len(res.Hits) == 0 {
		for _, word := range v.searcher.Suggest(query) {
			href, err := v.router.ServerHref(ResultRoute, routes.Params{"query": word})
			if err != nil {
				return err
			}
			page.Suggestions = append(page.Suggestions, suggestion{Word: word, Href: href})
		}
	}

	return v.templates.Render(w, http.StatusOK, layout, resultView, page)
}

// submit turns the entrance form into a navigation to the results page.
func (v *views) submit(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	target := routes.Target{Path: "/"}
	if query != "" {
		target = routes.Target{Name: ResultRoute, Params: routes.Params{"query": query}}
	}

	m, err := v.router.Replace(target)
	if err != nil {
		v.logger.Error("search redirect failed", "query", query, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, v.router.ServerPath(m.Path), http.StatusSeeOther)
}
