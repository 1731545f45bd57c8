package search

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Token is an index term and the surface text it was derived from.
type Token struct {
	Term    string
	Surface string
}

// Normalize applies NFKC and Unicode case folding. A Caser holds state, so
// each call folds with its own.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// Tokenize splits text into index terms. Runs of Han characters become
// overlapping bigrams; other letter and digit runs are stemmed as English.
func Tokenize(text string) []Token {
	var (
		tokens []Token
		run    []rune
		han    bool
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		if han {
			tokens = appendBigrams(tokens, run)
		} else {
			tokens = append(tokens, stem(string(run)))
		}
		run = run[:0]
	}

	for _, r := range Normalize(text) {
		switch {
		case unicode.Is(unicode.Han, r):
			if !han {
				flush()
				han = true
			}
			run = append(run, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
			if han {
				flush()
				han = false
			}
			run = append(run, r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

func appendBigrams(tokens []Token, run []rune) []Token {
	if len(run) == 1 {
		s := string(run)
		return append(tokens, Token{Term: s, Surface: s})
	}
	for i := 0; i+1 < len(run); i++ {
		s := string(run[i : i+2])
		tokens = append(tokens, Token{Term: s, Surface: s})
	}
	return tokens
}

func stem(word string) Token {
	term, err := snowball.Stem(word, "english", true)
	if err != nil || term == "" {
		term = word
	}
	return Token{Term: strings.ToLower(term), Surface: word}
}

// Terms returns the index terms of text.
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Term
	}
	return terms
}
