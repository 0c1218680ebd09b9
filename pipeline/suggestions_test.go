package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestions(t *testing.T) {
	t.Run("only low-scoring sections get suggestions", func(t *testing.T) {
		sections := []string{
			"All about coffee roasting and coffee beans.",
			"A page about something else entirely.",
		}
		scores := []float64{8.2, 2.1}

		suggestions := Suggestions(sections, scores, "coffee roasting")
		require.Len(t, suggestions, 1)
		assert.Equal(t, 2, suggestions[0].Section)
		assert.InDelta(t, 2.1, suggestions[0].Score, 1e-9)
		assert.Equal(t, []string{"coffee", "roasting"}, suggestions[0].MissingKeywords)
		assert.Equal(t, "coffee roasting", suggestions[0].Topic)
	})

	t.Run("keyword matching is case-insensitive", func(t *testing.T) {
		suggestions := Suggestions([]string{"COFFEE is mentioned here"}, []float64{1.0}, "coffee roasting")
		require.Len(t, suggestions, 1)
		assert.Equal(t, []string{"roasting"}, suggestions[0].MissingKeywords)
	})

	t.Run("boundary score gets no suggestion", func(t *testing.T) {
		suggestions := Suggestions([]string{"text"}, []float64{5.0}, "query")
		assert.Empty(t, suggestions)
	})

	t.Run("no missing keywords still suggests expansion", func(t *testing.T) {
		suggestions := Suggestions([]string{"coffee roasting briefly"}, []float64{4.0}, "coffee roasting")
		require.Len(t, suggestions, 1)
		assert.Empty(t, suggestions[0].MissingKeywords)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Suggestions(nil, nil, "query"))
	})
}
