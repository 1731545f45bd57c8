package corpus

import "errors"

var (
	ErrEmptyDocument    = errors.New("document has no title")
	ErrDocumentTooLarge = errors.New("document exceeds max size")
	ErrUnknownSource    = errors.New("unknown corpus source")
	ErrNotFound         = errors.New("document not found")
	ErrDuplicate        = errors.New("document already exists")
)
