package corpus

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/board-search/pkg/repository"
)

// Migrations holds the documents schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const columns = "id, key, url, title, content"

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(&d.ID, &d.Key, &d.URL, &d.Title, &d.Content)
	return d, err
}

// Store reads and writes the documents table.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore wraps an open pool.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With("system", "corpus", "source", SourcePostgres),
	}
}

// Load returns every stored document ordered by key.
func (s *Store) Load(ctx context.Context) ([]Document, error) {
	q := "SELECT " + columns + " FROM documents ORDER BY key"
	docs, err := repository.QueryMany(ctx, s.db, q, nil, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	s.logger.Info("documents loaded", "count", len(docs))
	return docs, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := repository.QueryOne(ctx, s.db, "SELECT COUNT(*) FROM documents", nil, func(sc repository.Scanner) (int, error) {
		var n int
		err := sc.Scan(&n)
		return n, err
	})
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Insert adds doc. A document with the same key yields ErrDuplicate.
func (s *Store) Insert(ctx context.Context, doc Document) error {
	q := `
		INSERT INTO documents (` + columns + `)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, q, doc.ID, doc.Key, doc.URL, doc.Title, doc.Content)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

// Upsert writes docs in one transaction, replacing documents with the same key.
func (s *Store) Upsert(ctx context.Context, docs []Document) (int, error) {
	q := `
		INSERT INTO documents (` + columns + `)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET url = EXCLUDED.url,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			updated_at = NOW()`

	n, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (int, error) {
		for i, d := range docs {
			if _, err := tx.ExecContext(ctx, q, d.ID, d.Key, d.URL, d.Title, d.Content); err != nil {
				return i, fmt.Errorf("upsert %s: %w", d.Key, err)
			}
		}
		return len(docs), nil
	})
	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	s.logger.Info("documents saved", "count", n)
	return n, nil
}
