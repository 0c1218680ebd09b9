package ai

import (
	"context"

	"github.com/poiesic/pagesim/core"
)

// Embedder generates vector embeddings from text for semantic similarity
// scoring. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice contains embeddings in the same order as the input
	// texts. Embedding must fail closed: on any failure the whole batch
	// fails with an error rather than returning partial or zero vectors.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TextAnalyzer performs sentiment and entity analysis against a remote
// classification service. Implementations must be thread-safe for
// concurrent use.
type TextAnalyzer interface {
	// AnalyzeSentiment returns the document-level sentiment of the text.
	AnalyzeSentiment(ctx context.Context, text string) (*core.Sentiment, error)

	// AnalyzeEntities returns the named entities mentioned in the text,
	// in the order the service reports them. An empty slice is a valid
	// result for text that mentions no entities.
	AnalyzeEntities(ctx context.Context, text string) ([]core.Entity, error)
}
