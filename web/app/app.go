// Package app is the search portal: the application route table, its
// server-rendered views, and the embedded assets they reference.
package app

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/board-search/internal/search"
	"github.com/JaimeStill/board-search/pkg/history"
	"github.com/JaimeStill/board-search/pkg/middleware"
	"github.com/JaimeStill/board-search/pkg/module"
	"github.com/JaimeStill/board-search/pkg/routes"
	"github.com/JaimeStill/board-search/pkg/web"
)

//go:embed dist/*
var distFS embed.FS

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

// ResultRoute names the results page.
const ResultRoute = "Result"

const layout = "app.html"

var publicFiles = []string{"robots.txt"}

var (
	entranceView    = web.ViewDef{Template: "entrance.html", Title: "Search"}
	resultView      = web.ViewDef{Template: "result.html", Title: "Results"}
	notFoundView    = web.ViewDef{Template: "404.html", Title: "Not Found"}
	unavailableView = web.ViewDef{Template: "503.html", Title: "Unavailable"}
)

// Searcher is the query surface the results page depends on.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (search.Results, error)
	Suggest(query string) []string
}

// Entries declares the application routes: the entrance page at "/" and
// the results page for a query at "/result/:query".
func Entries(entrance, result routes.View) []routes.Entry {
	return []routes.Entry{
		{Path: "/", View: entrance},
		{Path: "/result/:query", Name: ResultRoute, View: result},
	}
}

// App owns the route table and the module serving it.
type App struct {
	router *routes.Router
	module *module.Module
}

// New builds the portal for h. A nil h selects web history at "/".
func New(h history.Strategy, searcher Searcher, logger *slog.Logger) (*App, error) {
	if h == nil {
		h = history.NewWebHistory("/")
	}
	logger = logger.With("module", "app")
	prefix := strings.TrimSuffix(h.Base(), "/")

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		prefix,
		[]web.ViewDef{entranceView, resultView, notFoundView, unavailableView},
		nil,
	)
	if err != nil {
		return nil, err
	}

	v := &views{templates: ts, searcher: searcher, logger: logger}
	rt, err := routes.NewRouter(h, Entries(routes.ViewFunc(v.entrance), routes.ViewFunc(v.result))...)
	if err != nil {
		return nil, err
	}
	v.router = rt

	notFound := ts.ErrorHandler(layout, notFoundView, http.StatusNotFound, logger)

	r := web.NewRouter()
	r.SetFallback(rt.Handler(notFound, logger))
	r.HandleFunc("GET "+prefix+"/search", v.submit)
	r.HandleFunc("GET "+prefix+"/dist/", web.DistServer(distFS, "dist", prefix+"/dist/"))
	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}

	m := module.New("/", r)
	m.Use(middleware.Logger(logger))
	m.Use(middleware.Recover(logger, false))
	m.Use(middleware.Headers(middleware.SecurityHeaders...))

	return &App{router: rt, module: m}, nil
}

// Module returns the root module serving the portal.
func (a *App) Module() *module.Module {
	return a.module
}

// Router returns the application route table bound to its history.
func (a *App) Router() *routes.Router {
	return a.router
}
