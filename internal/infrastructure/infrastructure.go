// Package infrastructure assembles the systems every module depends on:
// lifecycle coordination, logging, the optional database pool, and the
// search index over the configured corpus.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/board-search/internal/config"
	"github.com/JaimeStill/board-search/internal/corpus"
	"github.com/JaimeStill/board-search/internal/search"
	"github.com/JaimeStill/board-search/pkg/database"
	"github.com/JaimeStill/board-search/pkg/lifecycle"
	"github.com/JaimeStill/board-search/pkg/logging"
)

// Infrastructure holds the core systems required by the api and app modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Index     *search.Index
}

// New creates an Infrastructure from cfg. The database system is created
// only for the postgres corpus source. Nothing is started; call Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, logging.New(&cfg.Logging))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
	}

	var source corpus.Source
	switch cfg.Corpus.Source {
	case corpus.SourcePostgres:
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
		source = &storeSource{db: db, logger: logger}
	default:
		s, err := corpus.NewSource(&cfg.Corpus, nil, logger)
		if err != nil {
			return nil, fmt.Errorf("corpus init failed: %w", err)
		}
		source = s
	}

	infra.Index = search.NewIndex(source, &cfg.Search, logger)
	return infra, nil
}

// Start connects the database, applies pending migrations, and schedules the
// initial index build as a startup hook.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
		db, err := i.Database.Connection()
		if err != nil {
			return err
		}
		version, err := database.Migrate(db, corpus.Migrations, "migrations")
		if err != nil {
			return fmt.Errorf("database migrate failed: %w", err)
		}
		i.Logger.Info("database migrated", "version", version)
	}

	i.Index.Start(i.Lifecycle)
	return nil
}

// storeSource loads from the document table once the pool is connected.
type storeSource struct {
	db     database.System
	logger *slog.Logger
}

func (s *storeSource) Load(ctx context.Context) ([]corpus.Document, error) {
	db, err := s.db.Connection()
	if err != nil {
		return nil, err
	}
	return corpus.NewStore(db, s.logger).Load(ctx)
}
