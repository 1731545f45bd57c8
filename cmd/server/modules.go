package main

import (
	"net/http"

	"github.com/JaimeStill/board-search/internal/api"
	"github.com/JaimeStill/board-search/internal/config"
	"github.com/JaimeStill/board-search/internal/infrastructure"
	"github.com/JaimeStill/board-search/pkg/module"
	"github.com/JaimeStill/board-search/web/app"
)

// Modules holds the mounted HTTP modules.
type Modules struct {
	API *module.Module
	App *module.Module
}

// NewModules builds the portal for the configured history strategy and the
// JSON API over the same route table.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	strategy, err := cfg.App.Strategy()
	if err != nil {
		return nil, err
	}

	portal, err := app.New(strategy, infra.Index, infra.Logger)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(infra.Index, portal.Router().Table(), cfg.Version, infra.Logger)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
		App: portal.Module(),
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() || !infra.Index.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
