// Package search ranks bulletin documents against free-text queries with an
// inverted index and TF-IDF cosine similarity.
package search

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strings"

	"github.com/JaimeStill/board-search/internal/corpus"
	"github.com/google/uuid"
)

const (
	DefaultLimit       = 10
	DefaultSuggestions = 5
	maxEditDistance    = 2
	snippetRunes       = 160
)

type posting struct {
	doc int
	tf  int
}

// Engine is an immutable index over a document set.
type Engine struct {
	docs     []corpus.Document
	postings map[string][]posting
	idf      map[string]float64
	vectors  []map[string]float64
	norms    []float64
	surface  map[string]string
	vocab    []string
	byID     map[uuid.UUID]int
}

// Hit is a ranked document.
type Hit struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Snippet string    `json:"snippet"`
	Score   float64   `json:"score"`
}

// Results is the outcome of a query.
type Results struct {
	Query string   `json:"query"`
	Terms []string `json:"terms"`
	Total int      `json:"total"`
	Hits  []Hit    `json:"hits"`
}

// Build indexes docs. A document's ordinal is its position in docs.
func Build(docs []corpus.Document) *Engine {
	e := &Engine{
		docs:     docs,
		postings: make(map[string][]posting),
		idf:      make(map[string]float64),
		vectors:  make([]map[string]float64, len(docs)),
		norms:    make([]float64, len(docs)),
		surface:  make(map[string]string),
		byID:     make(map[uuid.UUID]int, len(docs)),
	}

	counts := make([]map[string]int, len(docs))
	for i, d := range docs {
		e.byID[d.ID] = i
		tf := make(map[string]int)
		for _, tok := range Tokenize(d.Title + "\n" + d.Content) {
			tf[tok.Term]++
			if _, ok := e.surface[tok.Term]; !ok {
				e.surface[tok.Term] = tok.Surface
			}
		}
		counts[i] = tf

		terms := make([]string, 0, len(tf))
		for t := range tf {
			terms = append(terms, t)
		}
		slices.Sort(terms)
		for _, t := range terms {
			e.postings[t] = append(e.postings[t], posting{doc: i, tf: tf[t]})
		}
	}

	n := float64(len(docs))
	e.vocab = make([]string, 0, len(e.postings))
	for t, list := range e.postings {
		e.idf[t] = math.Log10(n / float64(len(list)))
		e.vocab = append(e.vocab, t)
	}
	slices.Sort(e.vocab)

	for i, tf := range counts {
		vec := make(map[string]float64, len(tf))
		var sum float64
		for t, c := range tf {
			w := float64(c) * e.idf[t]
			vec[t] = w
			sum += w * w
		}
		e.vectors[i] = vec
		e.norms[i] = math.Sqrt(sum)
	}

	return e
}

// Len returns the number of indexed documents.
func (e *Engine) Len() int {
	return len(e.docs)
}

// VocabularySize returns the number of distinct terms.
func (e *Engine) VocabularySize() int {
	return len(e.vocab)
}

// Document returns the indexed document with id.
func (e *Engine) Document(id uuid.UUID) (corpus.Document, bool) {
	i, ok := e.byID[id]
	if !ok {
		return corpus.Document{}, false
	}
	return e.docs[i], true
}

// Search returns up to limit documents containing every known query term,
// best first. Query terms missing from the vocabulary are ignored. limit <= 0
// uses DefaultLimit.
func (e *Engine) Search(ctx context.Context, query string, limit int) (Results, error) {
	query = strings.TrimSpace(query)
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return Results{}, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	res := Results{Query: Normalize(query), Terms: []string{}, Hits: []Hit{}}

	qtf := make(map[string]float64)
	for _, tok := range tokens {
		if _, ok := e.postings[tok.Term]; !ok {
			continue
		}
		if qtf[tok.Term] == 0 {
			res.Terms = append(res.Terms, tok.Term)
		}
		qtf[tok.Term]++
	}
	if len(res.Terms) == 0 {
		return res, nil
	}

	var qnorm float64
	for t, c := range qtf {
		qtf[t] = c / float64(len(tokens))
		qnorm += qtf[t] * qtf[t]
	}
	qnorm = math.Sqrt(qnorm)

	candidates := e.intersect(res.Terms)
	res.Total = len(candidates)

	top := newTopK(limit)
	for i, doc := range candidates {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return Results{}, err
			}
		}
		top.offer(scored{doc: doc, score: e.cosine(doc, qtf, qnorm)})
	}

	for _, s := range top.sorted() {
		d := e.docs[s.doc]
		res.Hits = append(res.Hits, Hit{
			ID:      d.ID,
			Title:   d.Title,
			URL:     d.URL,
			Snippet: snippet(d.Content),
			Score:   s.score,
		})
	}

	return res, nil
}

// intersect returns the ordinals present in every term's postings.
func (e *Engine) intersect(terms []string) []int {
	lists := make([][]posting, len(terms))
	for i, t := range terms {
		lists[i] = e.postings[t]
	}
	slices.SortFunc(lists, func(a, b []posting) int {
		return cmp.Compare(len(a), len(b))
	})

	out := make([]int, len(lists[0]))
	for i, p := range lists[0] {
		out[i] = p.doc
	}

	for _, list := range lists[1:] {
		kept := out[:0]
		j := 0
		for _, doc := range out {
			for j < len(list) && list[j].doc < doc {
				j++
			}
			if j < len(list) && list[j].doc == doc {
				kept = append(kept, doc)
			}
		}
		out = kept
	}
	return out
}

func (e *Engine) cosine(doc int, qtf map[string]float64, qnorm float64) float64 {
	denom := e.norms[doc] * qnorm
	if denom == 0 {
		return 0
	}
	vec := e.vectors[doc]
	var dot float64
	for t, w := range qtf {
		dot += w * vec[t]
	}
	return dot / denom
}

// Suggest returns up to n vocabulary words within edit distance 2 of a
// query token that is not itself indexed, nearest first. The distance is
// also kept below the token's length, so two-rune tokens allow one edit.
// n <= 0 uses DefaultSuggestions.
func (e *Engine) Suggest(query string, n int) []string {
	if n <= 0 {
		n = DefaultSuggestions
	}

	type candidate struct {
		word string
		dist int
	}

	seen := make(map[string]bool)
	var found []candidate

	for _, tok := range Tokenize(query) {
		if _, ok := e.postings[tok.Term]; ok {
			continue
		}
		q := []rune(tok.Term)
		limit := min(maxEditDistance, len(q)-1)
		if limit < 1 {
			continue
		}
		for _, term := range e.vocab {
			d := editDistance(q, []rune(term), limit)
			if d == 0 || d > limit {
				continue
			}
			word := e.surface[term]
			if seen[word] {
				continue
			}
			seen[word] = true
			found = append(found, candidate{word: word, dist: d})
		}
	}

	slices.SortStableFunc(found, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.word, b.word)
	})

	found = found[:min(n, len(found))]
	out := make([]string, 0, len(found))
	for _, c := range found {
		out = append(out, c.word)
	}
	return out
}

func snippet(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	r := []rune(content)
	if len(r) <= snippetRunes {
		return content
	}
	return string(r[:snippetRunes]) + "…"
}
