// Package database opens the PostgreSQL pool through the pgx stdlib driver
// and ties its lifetime to the lifecycle coordinator.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/JaimeStill/board-search/pkg/lifecycle"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReady is returned by Connection before Start has succeeded.
var ErrNotReady = errors.New("database not ready")

// System is the database pool owner.
type System interface {
	Connection() (*sql.DB, error)
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	cfg    Config
	db     *sql.DB
	ready  atomic.Bool
	logger *slog.Logger
}

// New opens (but does not ping) a pool for cfg.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.URL("postgres"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		cfg:    *cfg,
		db:     db,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() (*sql.DB, error) {
	if !d.ready.Load() {
		return nil, ErrNotReady
	}
	return d.db, nil
}

// Start pings the server within the connect timeout and registers a
// shutdown hook that closes the pool.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	d.ready.Store(true)
	d.logger.Info("database connected", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.db.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database closed")
	})

	return nil
}
