package pipeline

import (
	"strings"

	"github.com/poiesic/pagesim/core"
)

// suggestionThreshold is the score below which a section is considered
// poorly optimized for the query.
const suggestionThreshold = 5.0

// Suggestions derives optimization hints for sections scoring below the
// threshold. For each such section it reports the query words absent
// (case-insensitively) from the raw section text and prompts expansion on
// the query topic. Sections are numbered from 1 in the output.
func Suggestions(sections []string, scores []float64, query string) []core.Suggestion {
	queryWords := strings.Fields(query)

	var suggestions []core.Suggestion
	for i, section := range sections {
		if i >= len(scores) || scores[i] >= suggestionThreshold {
			continue
		}

		lowered := strings.ToLower(section)
		var missing []string
		for _, word := range queryWords {
			if !strings.Contains(lowered, strings.ToLower(word)) {
				missing = append(missing, word)
			}
		}

		suggestions = append(suggestions, core.Suggestion{
			Section:         i + 1,
			Score:           scores[i],
			MissingKeywords: missing,
			Topic:           query,
		})
	}
	return suggestions
}
