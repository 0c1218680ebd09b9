// Package textnorm turns raw page text into the canonical token string used
// for embedding generation. Normalization lowercases, tokenizes, strips
// stopwords and punctuation, and stems each surviving token. The output is a
// pure function of the input and normalizing an already-normalized string
// yields the same string back.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/unicode/norm"
)

// Normalize converts text to its canonical form: lowercased, tokenized,
// stopword- and punctuation-filtered, stemmed, and joined with single spaces.
// Empty or punctuation-only input yields the empty string.
func Normalize(text string) string {
	lowered := strings.ToLower(norm.NFKC.String(text))

	tokens := strings.Fields(lowered)
	stemmed := make([]string, 0, len(tokens))
	for _, token := range tokens {
		cleaned := strings.TrimFunc(token, isPunct)
		if cleaned == "" || !isAlphanumeric(cleaned) {
			continue
		}
		if stopWords[cleaned] {
			continue
		}
		stemmed = append(stemmed, english.Stem(cleaned, false))
	}

	return strings.Join(stemmed, " ")
}

// NormalizeAll normalizes a slice of strings, preserving order.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
