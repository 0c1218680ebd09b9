package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/pagesim/ai/mock"
	"github.com/poiesic/pagesim/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFastService builds a service with an effectively unlimited rate so
// tests that are not about throttling stay fast.
func newFastService(t *testing.T, analyzer *mock.Analyzer) *Service {
	t.Helper()
	service, err := NewService(analyzer, WithCallsPerSecond(10000))
	require.NoError(t, err)
	t.Cleanup(service.Release)
	return service
}

func TestNewService(t *testing.T) {
	t.Run("nil analyzer", func(t *testing.T) {
		_, err := NewService(nil)
		assert.Equal(t, ErrAnalyzerRequired, err)
	})

	t.Run("valid configuration", func(t *testing.T) {
		service, err := NewService(mock.NewAnalyzer())
		require.NoError(t, err)
		defer service.Release()
		assert.NotNil(t, service)
	})

	t.Run("invalid rate", func(t *testing.T) {
		_, err := NewService(mock.NewAnalyzer(), WithCallsPerSecond(0))
		assert.Error(t, err)
	})
}

func TestAnalyzeSentimentMemoization(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	analyzer.AnalyzeSentimentFunc = func(_ context.Context, _ string) (*core.Sentiment, error) {
		return &core.Sentiment{Score: 0.8, Magnitude: 0.9}, nil
	}
	service := newFastService(t, analyzer)
	ctx := context.Background()

	first := service.AnalyzeSentiment(ctx, "This is a test.")
	second := service.AnalyzeSentiment(ctx, "This is a test.")

	require.NotNil(t, first)
	assert.InDelta(t, 0.8, float64(first.Score), 1e-6)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, analyzer.SentimentCallCount(),
		"identical text must trigger at most one remote call")
}

func TestAnalyzeSentimentFailureDegrades(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	analyzer.AnalyzeSentimentFunc = func(_ context.Context, _ string) (*core.Sentiment, error) {
		return nil, errors.New("remote unavailable")
	}
	service := newFastService(t, analyzer)

	sentiment := service.AnalyzeSentiment(context.Background(), "whatever")
	assert.Nil(t, sentiment)

	// The failure is memoized; the remote service is not re-invoked.
	_ = service.AnalyzeSentiment(context.Background(), "whatever")
	assert.Equal(t, 1, analyzer.SentimentCallCount())
}

func TestAnalyzeEntitiesMemoization(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	analyzer.AnalyzeEntitiesFunc = func(_ context.Context, _ string) ([]core.Entity, error) {
		return []core.Entity{{Name: "Google", Type: "ORGANIZATION"}}, nil
	}
	service := newFastService(t, analyzer)
	ctx := context.Background()

	first := service.AnalyzeEntities(ctx, "Google is a tech company.")
	second := service.AnalyzeEntities(ctx, "Google is a tech company.")

	require.Len(t, first, 1)
	assert.Equal(t, "Google", first[0].Name)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, analyzer.EntityCallCount())
}

func TestAnalyzeEntitiesFailureDegrades(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	analyzer.AnalyzeEntitiesFunc = func(_ context.Context, _ string) ([]core.Entity, error) {
		return nil, errors.New("remote unavailable")
	}
	service := newFastService(t, analyzer)

	entities := service.AnalyzeEntities(context.Background(), "whatever")
	assert.NotNil(t, entities)
	assert.Empty(t, entities)
}

func TestSentimentAndEntityCachesAreIndependent(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	service := newFastService(t, analyzer)
	ctx := context.Background()

	_ = service.AnalyzeSentiment(ctx, "same text")
	_ = service.AnalyzeEntities(ctx, "same text")

	assert.Equal(t, 1, analyzer.SentimentCallCount())
	assert.Equal(t, 1, analyzer.EntityCallCount())
}

func TestClearResetsMemoization(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	service := newFastService(t, analyzer)
	ctx := context.Background()

	_ = service.AnalyzeSentiment(ctx, "text")
	service.Clear()
	_ = service.AnalyzeSentiment(ctx, "text")

	assert.Equal(t, 2, analyzer.SentimentCallCount())
}

func TestRateLimitFloor(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	service, err := NewService(analyzer, WithCallsPerSecond(10))
	require.NoError(t, err)
	defer service.Release()

	ctx := context.Background()
	const n = 3

	start := time.Now()
	for i := 0; i < n; i++ {
		// Distinct texts so every call reaches the limiter.
		_ = service.AnalyzeSentiment(ctx, fmt.Sprintf("section %d", i))
	}
	elapsed := time.Since(start)

	minimum := time.Duration(n-1) * 100 * time.Millisecond
	assert.GreaterOrEqual(t, elapsed, minimum,
		"%d calls at 10/s must take at least %v", n, minimum)
}

func TestRateLimitsAreIndependentPerOperation(t *testing.T) {
	analyzer := mock.NewAnalyzer()
	service, err := NewService(analyzer, WithCallsPerSecond(10))
	require.NoError(t, err)
	defer service.Release()

	ctx := context.Background()

	// One sentiment call then one entity call: the entity limiter has its
	// own budget, so the pair completes well under one sentiment interval.
	start := time.Now()
	_ = service.AnalyzeSentiment(ctx, "a")
	_ = service.AnalyzeEntities(ctx, "b")
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAnalyzeAll(t *testing.T) {
	t.Run("order and length preserved", func(t *testing.T) {
		analyzer := mock.NewAnalyzer()
		analyzer.AnalyzeSentimentFunc = func(_ context.Context, text string) (*core.Sentiment, error) {
			// Score derived from the text so order is verifiable.
			return &core.Sentiment{Score: float32(len(text))}, nil
		}
		analyzer.AnalyzeEntitiesFunc = func(_ context.Context, text string) ([]core.Entity, error) {
			return []core.Entity{{Name: text, Type: "OTHER"}}, nil
		}
		service := newFastService(t, analyzer)

		sections := []string{"a", "bb", "ccc", "dddd"}
		sentiments, entities := service.AnalyzeAll(context.Background(), sections)

		require.Len(t, sentiments, len(sections))
		require.Len(t, entities, len(sections))
		for i, section := range sections {
			require.NotNil(t, sentiments[i])
			assert.Equal(t, float32(len(section)), sentiments[i].Score)
			require.Len(t, entities[i], 1)
			assert.Equal(t, section, entities[i][0].Name)
		}
	})

	t.Run("partial failure does not corrupt siblings", func(t *testing.T) {
		analyzer := mock.NewAnalyzer()
		analyzer.AnalyzeSentimentFunc = func(_ context.Context, text string) (*core.Sentiment, error) {
			if text == "bad" {
				return nil, errors.New("remote failure")
			}
			return &core.Sentiment{Score: 0.5}, nil
		}
		service := newFastService(t, analyzer)

		sentiments, entities := service.AnalyzeAll(context.Background(), []string{"good", "bad", "also good"})

		require.Len(t, sentiments, 3)
		require.Len(t, entities, 3)
		assert.NotNil(t, sentiments[0])
		assert.Nil(t, sentiments[1])
		assert.NotNil(t, sentiments[2])
	})

	t.Run("empty section list", func(t *testing.T) {
		service := newFastService(t, mock.NewAnalyzer())
		sentiments, entities := service.AnalyzeAll(context.Background(), nil)
		assert.Empty(t, sentiments)
		assert.Empty(t, entities)
	})
}
