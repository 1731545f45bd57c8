package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/docker/go-units"
)

// Filesystem loads every *.txt page under a directory tree.
type Filesystem struct {
	fsys    fs.FS
	maxSize int64
	logger  *slog.Logger
}

// NewFilesystem reads pages from fsys. Pages larger than maxSize bytes are
// skipped.
func NewFilesystem(fsys fs.FS, maxSize int64, logger *slog.Logger) *Filesystem {
	return &Filesystem{
		fsys:    fsys,
		maxSize: maxSize,
		logger:  logger.With("system", "corpus", "source", SourceFilesystem),
	}
}

// Load walks the tree in lexical order. Oversized and unparsable pages are
// logged and skipped; read errors abort the load.
func (f *Filesystem) Load(ctx context.Context) ([]Document, error) {
	var docs []Document

	err := fs.WalkDir(f.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || path.Ext(p) != ".txt" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > f.maxSize {
			f.logger.Warn("page skipped",
				"key", p,
				"size", units.HumanSize(float64(info.Size())),
				"error", ErrDocumentTooLarge,
			)
			return nil
		}

		raw, err := fs.ReadFile(f.fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		doc, err := Parse(p, string(raw))
		if err != nil {
			f.logger.Warn("page skipped", "key", p, "error", err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}

	f.logger.Info("pages loaded", "count", len(docs))
	return docs, nil
}
