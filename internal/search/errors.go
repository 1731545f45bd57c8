package search

import "errors"

var (
	ErrEmptyQuery = errors.New("empty query")
	ErrNotReady   = errors.New("search index not ready")
)
