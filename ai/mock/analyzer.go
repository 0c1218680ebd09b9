package mock

import (
	"context"
	"sync"

	"github.com/poiesic/pagesim/core"
)

// Analyzer is a test double for ai.TextAnalyzer.
// It counts calls per operation so tests can assert memoization and
// rate-limiting behavior, and allows behavior injection via function fields.
type Analyzer struct {
	// AnalyzeSentimentFunc is called by AnalyzeSentiment if set.
	AnalyzeSentimentFunc func(ctx context.Context, text string) (*core.Sentiment, error)

	// AnalyzeEntitiesFunc is called by AnalyzeEntities if set.
	AnalyzeEntitiesFunc func(ctx context.Context, text string) ([]core.Entity, error)

	mu             sync.Mutex
	sentimentCalls int
	entityCalls    int
}

// NewAnalyzer creates a mock analyzer with neutral default behavior.
// Note: returns the concrete type so tests can assert call counts and
// inject behavior.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeSentiment returns a neutral sentiment unless a custom func is set.
func (m *Analyzer) AnalyzeSentiment(ctx context.Context, text string) (*core.Sentiment, error) {
	m.mu.Lock()
	m.sentimentCalls++
	m.mu.Unlock()

	if m.AnalyzeSentimentFunc != nil {
		return m.AnalyzeSentimentFunc(ctx, text)
	}
	return &core.Sentiment{Score: 0, Magnitude: 0.1}, nil
}

// AnalyzeEntities returns no entities unless a custom func is set.
func (m *Analyzer) AnalyzeEntities(ctx context.Context, text string) ([]core.Entity, error) {
	m.mu.Lock()
	m.entityCalls++
	m.mu.Unlock()

	if m.AnalyzeEntitiesFunc != nil {
		return m.AnalyzeEntitiesFunc(ctx, text)
	}
	return []core.Entity{}, nil
}

// SentimentCallCount returns how many times AnalyzeSentiment was invoked.
func (m *Analyzer) SentimentCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sentimentCalls
}

// EntityCallCount returns how many times AnalyzeEntities was invoked.
func (m *Analyzer) EntityCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entityCalls
}

// Reset clears call counts and injected behavior.
func (m *Analyzer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentimentCalls = 0
	m.entityCalls = 0
	m.AnalyzeSentimentFunc = nil
	m.AnalyzeEntitiesFunc = nil
}
