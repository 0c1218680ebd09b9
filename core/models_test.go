package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("some section text")
		b := IDFromContent("some section text")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content produces distinct ids", func(t *testing.T) {
		a := IDFromContent("first section")
		b := IDFromContent("second section")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		// Must not panic; empty text is a legal cache key.
		_ = IDFromContent("")
	})
}

func TestResultAverageScore(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		var r *Result
		assert.Equal(t, 0.0, r.AverageScore())
	})

	t.Run("empty scores", func(t *testing.T) {
		r := &Result{}
		assert.Equal(t, 0.0, r.AverageScore())
	})

	t.Run("mean of scores", func(t *testing.T) {
		r := &Result{Scores: []float64{2.0, 4.0, 6.0}}
		assert.InDelta(t, 4.0, r.AverageScore(), 1e-9)
	})
}

func TestSuggestionString(t *testing.T) {
	s := Suggestion{
		Section:         2,
		Score:           3.5,
		MissingKeywords: []string{"espresso", "roast"},
		Topic:           "espresso roast",
	}
	expected := "Section 2 (Score: 3.50):\n" +
		"  - Consider adding these keywords: espresso, roast\n" +
		"  - Expand on topics related to: espresso roast"
	assert.Equal(t, expected, s.String())
}

func TestSuggestionString_NoMissingKeywords(t *testing.T) {
	s := Suggestion{Section: 1, Score: 4.9, Topic: "coffee"}
	expected := "Section 1 (Score: 4.90):\n" +
		"  - Expand on topics related to: coffee"
	assert.Equal(t, expected, s.String())
}
