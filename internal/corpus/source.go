package corpus

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
)

// NewSource builds the source cfg selects. db is required only for the
// postgres source.
func NewSource(cfg *Config, db *sql.DB, logger *slog.Logger) (Source, error) {
	switch cfg.Source {
	case SourceFilesystem:
		return NewFilesystem(os.DirFS(cfg.PagesDir), cfg.MaxDocumentBytes(), logger), nil
	case SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres source requires a database connection")
		}
		return NewStore(db, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
