package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/board-search/internal/corpus"
)

type writer interface {
	Insert(ctx context.Context, doc corpus.Document) error
	Upsert(ctx context.Context, docs []corpus.Document) (int, error)
}

// Report summarizes one ingest run.
type Report struct {
	Written int
	Skipped int
}

// ingest writes docs through w. With upsert every document is written in one
// transaction; otherwise documents whose key already exists are skipped.
func ingest(ctx context.Context, w writer, docs []corpus.Document, upsert bool) (Report, error) {
	if upsert {
		n, err := w.Upsert(ctx, docs)
		if err != nil {
			return Report{}, err
		}
		return Report{Written: n}, nil
	}

	var r Report
	for _, doc := range docs {
		err := w.Insert(ctx, doc)
		switch {
		case err == nil:
			r.Written++
		case errors.Is(err, corpus.ErrDuplicate):
			r.Skipped++
		default:
			return r, fmt.Errorf("insert %s: %w", doc.Key, err)
		}
	}
	return r, nil
}
