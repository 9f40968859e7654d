// Package normalizer turns raw document text into an ordered sequence of
// index terms. It lower-cases the input, splits on whitespace, punctuation
// and symbol boundaries (keeping intra-word hyphens and periods), drops
// tokens that are not purely ASCII alphabetic,
// removes stop-words and stems the survivors.
package normalizer

import (
	"strings"
	"unicode"
)

// Lexicon supplies the stop-word set and the stemmer.
type Lexicon interface {
	IsStopword(word string) bool
	Stem(word string) string
}

// Normalizer applies the pipeline with a fixed Lexicon. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	lex Lexicon
}

func New(lex Lexicon) *Normalizer {
	return &Normalizer{lex: lex}
}

// Process returns the terms of text in their original order, duplicates
// included. Empty or all-punctuation text yields an empty slice.
func (n *Normalizer) Process(text string) []string {
	words := Tokenize(text)
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if !isAlpha(word) {
			continue
		}
		if n.lex.IsStopword(word) {
			continue
		}
		stemmed := n.lex.Stem(word)
		if stemmed == "" {
			continue
		}
		terms = append(terms, stemmed)
	}
	return terms
}

// Tokenize lower-cases text and splits it into raw tokens on whitespace,
// punctuation and symbols. A hyphen or period between two word characters
// stays inside the token, so "e-mail" and "u.s.a" come out whole and are
// later discarded as non-alphabetic. Apostrophes always split. Tokens may
// still contain digits or non-ASCII letters.
func Tokenize(text string) []string {
	runes := []rune(strings.ToLower(text))
	tokens := make([]string, 0, len(runes)/4)
	start := -1
	for i := range runes {
		if isBoundary(runes, i) {
			if start >= 0 {
				tokens = append(tokens, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}

func isBoundary(runes []rune, i int) bool {
	r := runes[i]
	if (r == '-' || r == '.') && i > 0 && i+1 < len(runes) &&
		isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
		return false
	}
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if c := word[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
