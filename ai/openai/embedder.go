package openai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/pagesim/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// connectTimeout bounds each individual network call to the embedding service.
const connectTimeout = 30 * time.Second

// Embedder implements ai.Embedder against OpenAI-compatible embedding APIs.
// Each text is embedded with its own network call, wrapped in the
// quota-aware retry policy.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
		openai.WithHTTPClient(&http.Client{Timeout: connectTimeout}),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a remote embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
// Transient quota/availability failures are retried with backoff; terminal
// failures surface as errors, never as zero vectors.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	var vector []float32
	err := retryTransient(ctx, e.logger, func() error {
		result, err := e.embedder.EmbedDocuments(ctx, []string{text})
		if err != nil {
			return err
		}
		if len(result) != 1 || len(result[0]) == 0 {
			return ai.ErrEmptyEmbedding
		}
		vector = result[0]
		return nil
	})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	return vector, nil
}

// EmbedTexts generates embeddings for multiple texts, one remote call per
// text. Any failure fails the whole batch; partial results are never
// returned.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.EmbedText(ctx, text)
		if err != nil {
			e.logger.Error("batch embedding failed", "index", i, "err", err)
			return nil, fmt.Errorf("embedding text %d of %d: %w", i+1, len(texts), err)
		}
		if i > 0 && len(vector) != len(vectors[0]) {
			return nil, fmt.Errorf("embedding text %d of %d: inconsistent dimensions %d vs %d",
				i+1, len(texts), len(vector), len(vectors[0]))
		}
		vectors[i] = vector
	}

	return vectors, nil
}
