// Package corpus loads bulletin documents from a pages directory or from
// PostgreSQL, and parses the bulletin page format.
package corpus

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Document is a single bulletin page.
type Document struct {
	ID      uuid.UUID `json:"id"`
	Key     string    `json:"key"`
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// Source produces the documents to index.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}

// DocumentID derives the stable ID of the document stored under key.
func DocumentID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
}

var urlLine = regexp.MustCompile(`\[url\]:\s+(.*)`)

// Parse reads a page: an optional "[url]: <url>" line, the first other
// non-blank line as the title, and the remaining non-blank lines as content.
// Invalid UTF-8 is replaced with "?".
func Parse(key, raw string) (Document, error) {
	raw = strings.ToValidUTF8(raw, "?")

	doc := Document{ID: DocumentID(key), Key: key}
	if m := urlLine.FindStringSubmatch(raw); m != nil {
		doc.URL = strings.TrimSpace(m[1])
	}

	var content []string
	for line := range strings.Lines(raw) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" || urlLine.MatchString(line) {
			continue
		}
		if doc.Title == "" {
			doc.Title = strings.TrimSpace(line)
			continue
		}
		content = append(content, line)
	}

	if doc.Title == "" {
		return Document{}, ErrEmptyDocument
	}
	doc.Content = strings.Join(content, "\n")
	return doc, nil
}
