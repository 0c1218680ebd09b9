package analysis

import "errors"

var (
	// ErrAnalyzerRequired is returned when a text analyzer is not provided.
	ErrAnalyzerRequired = errors.New("text analyzer required")
)
