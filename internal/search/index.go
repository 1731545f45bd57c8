package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/JaimeStill/board-search/internal/corpus"
	"github.com/JaimeStill/board-search/pkg/lifecycle"
	"github.com/google/uuid"
)

// Index serves queries from the most recently built Engine. Rebuilds swap
// the engine atomically; in-flight queries finish on the engine they started
// with.
type Index struct {
	engine atomic.Pointer[Engine]
	source corpus.Source
	cfg    Config
	logger *slog.Logger
}

// NewIndex returns an empty index fed by source.
func NewIndex(source corpus.Source, cfg *Config, logger *slog.Logger) *Index {
	return &Index{
		source: source,
		cfg:    *cfg,
		logger: logger.With("system", "search"),
	}
}

// Engine returns the current engine, or nil before the first build.
func (x *Index) Engine() *Engine {
	return x.engine.Load()
}

// Ready reports whether an engine has been built.
func (x *Index) Ready() bool {
	return x.engine.Load() != nil
}

// Rebuild loads the source and replaces the engine.
func (x *Index) Rebuild(ctx context.Context) error {
	start := time.Now()

	docs, err := x.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	e := Build(docs)
	x.engine.Store(e)

	x.logger.Info("index built",
		"documents", e.Len(),
		"terms", e.VocabularySize(),
		"duration", time.Since(start),
	)
	return nil
}

// Start builds the index as a startup hook.
func (x *Index) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		if err := x.Rebuild(lc.Context()); err != nil {
			x.logger.Error("index build failed", "error", err)
		}
	})
}

// Search clamps limit to the configured bounds and queries the current engine.
func (x *Index) Search(ctx context.Context, query string, limit int) (Results, error) {
	e := x.engine.Load()
	if e == nil {
		return Results{}, ErrNotReady
	}
	return e.Search(ctx, query, x.cfg.Clamp(limit))
}

// Suggest returns spelling suggestions from the current engine.
func (x *Index) Suggest(query string) []string {
	e := x.engine.Load()
	if e == nil || !x.cfg.SuggestionsEnabled() {
		return nil
	}
	return e.Suggest(query, x.cfg.MaxSuggestions)
}

// Document returns the indexed document with id.
func (x *Index) Document(id uuid.UUID) (corpus.Document, error) {
	e := x.engine.Load()
	if e == nil {
		return corpus.Document{}, ErrNotReady
	}
	d, ok := e.Document(id)
	if !ok {
		return corpus.Document{}, corpus.ErrNotFound
	}
	return d, nil
}
