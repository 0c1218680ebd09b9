package ai

import "errors"

var (
	// ErrUnknownBackend is returned when loading a backend name that was
	// never registered. This is a configuration error and aborts the run.
	ErrUnknownBackend = errors.New("unknown embedding backend")

	// ErrEmptyEmbedding is returned when a backend produces no vector for
	// an input text. Embedding fails closed; a zero or missing vector is
	// never substituted.
	ErrEmptyEmbedding = errors.New("backend returned empty embedding")

	// ErrMissingAPIKey is returned when a remote service is configured
	// without credentials.
	ErrMissingAPIKey = errors.New("API key is required")
)
