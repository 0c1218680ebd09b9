package core

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for cached artifacts.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs, which is what makes
// it usable as a memoization cache key.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Page holds the content extracted from a webpage.
// Sections are ordered as they appear in the document; that order drives
// the ordering of every downstream result.
type Page struct {
	Title    string
	Sections []string
}

// Sentiment is the document-level sentiment of a piece of text.
// Score is in [-1, 1] (negative to positive); Magnitude is >= 0 and grows
// with the overall emotional strength of the text.
type Sentiment struct {
	Score     float32
	Magnitude float32
}

// Entity is a named entity mentioned in a piece of text.
type Entity struct {
	Name string
	Type string
}

// Result holds the four aligned output sequences of an analysis run.
// All slices have the same length as the input section list, in input order.
// A nil *Result means the run failed as a whole; partial results are never
// produced.
type Result struct {
	Sections   []string
	Scores     []float64
	Sentiments []*Sentiment // nil entry = sentiment analysis failed for that section
	Entities   [][]Entity   // empty entry = no entities found or analysis failed
}

// AverageScore returns the mean of the similarity scores, or 0 for an empty result.
func (r *Result) AverageScore() float64 {
	if r == nil || len(r.Scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.Scores {
		sum += s
	}
	return sum / float64(len(r.Scores))
}

// Suggestion is an optimization hint for a section that scored poorly
// against the query.
type Suggestion struct {
	Section         int // 1-based section number
	Score           float64
	MissingKeywords []string
	Topic           string
}

// String formats the suggestion the way it is presented to users.
func (s Suggestion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section %d (Score: %.2f):\n", s.Section, s.Score)
	if len(s.MissingKeywords) > 0 {
		fmt.Fprintf(&b, "  - Consider adding these keywords: %s\n", strings.Join(s.MissingKeywords, ", "))
	}
	fmt.Fprintf(&b, "  - Expand on topics related to: %s", s.Topic)
	return b.String()
}
