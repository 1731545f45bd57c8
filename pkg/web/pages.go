// Package web renders server-side views with html/template. Layouts are
// parsed once and cloned for every view at startup, so a missing or broken
// template fails construction instead of a request.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// ViewDef names a view template and its page title.
type ViewDef struct {
	Template string
	Title    string
}

// ViewData is passed to every template execution. BasePath lets templates
// build portable URLs with {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds one pre-parsed template tree per view.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts matching layoutGlob, then clones them for
// each view found under viewSubdir. funcs is installed before parsing and may
// be nil.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef, funcs template.FuncMap) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		parsed[v.Template] = t
	}

	return &TemplateSet{
		views:    parsed,
		basePath: basePath,
	}, nil
}

// BasePath returns the base path injected into ViewData.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes layout for the view into a buffer and writes it with
// status. Nothing is written when execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout string, view ViewDef, data any) error {
	t, ok := ts.views[view.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", view.Template)
	}

	var buf bytes.Buffer
	vd := ViewData{Title: view.Title, BasePath: ts.basePath, Data: data}
	if err := t.ExecuteTemplate(&buf, layout, vd); err != nil {
		return fmt.Errorf("execute %s: %w", view.Template, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// ErrorHandler renders view with status and nil data for every request. A
// render failure is logged and answered with the plain status text.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, view, nil); err != nil {
			logger.Error("error page render failed", "view", view.Template, "status", status, "error", err)
			http.Error(w, http.StatusText(status), status)
		}
	}
}
