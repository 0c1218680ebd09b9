// Package heatmap renders per-section similarity scores as a text bar
// chart for terminal output.
package heatmap

import (
	"fmt"
	"io"
	"strings"
)

const (
	barWidth = 40
	maxScore = 10.0
)

// Render writes one bar per score to w, labelled and scaled so that a
// score of 10 fills the full bar width. Labels and scores must be
// index-aligned; extra labels are ignored and missing labels fall back
// to a positional name. Scores outside [0, 10] are clamped for display.
func Render(w io.Writer, scores []float64, labels []string) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "(no sections)")
		return err
	}

	labelWidth := 0
	for i := range scores {
		if l := len(label(labels, i)); l > labelWidth {
			labelWidth = l
		}
	}

	for i, score := range scores {
		clamped := score
		if clamped < 0 {
			clamped = 0
		}
		if clamped > maxScore {
			clamped = maxScore
		}

		filled := int(clamped/maxScore*barWidth + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		_, err := fmt.Fprintf(w, "%-*s %s %5.2f\n", labelWidth, label(labels, i), bar, score)
		if err != nil {
			return err
		}
	}
	return nil
}

func label(labels []string, i int) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("Section %d", i+1)
}
