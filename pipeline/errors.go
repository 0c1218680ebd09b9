package pipeline

import "errors"

var (
	// ErrRegistryRequired is returned when a backend registry is not provided.
	ErrRegistryRequired = errors.New("backend registry required")

	// ErrAnalysisServiceRequired is returned when an analysis service is not provided.
	ErrAnalysisServiceRequired = errors.New("analysis service required")
)
