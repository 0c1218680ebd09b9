// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/poiesic/pagesim/ai"
	"github.com/poiesic/pagesim/core"
)

// defaultCallsPerSecond is the remote service quota per analysis operation.
// Sentiment and entity calls are limited independently.
const defaultCallsPerSecond = 10

// Service wraps a remote ai.TextAnalyzer with rate limiting, process-wide
// memoization, and a concurrent fan-out over many sections.
//
// Failures degrade per section: a failed sentiment analysis yields a nil
// Sentiment and a failed entity analysis yields an empty entity list. Errors
// are logged, never propagated to callers.
type Service struct {
	analyzer         ai.TextAnalyzer
	sentimentLimiter *rate.Limiter
	entityLimiter    *rate.Limiter
	cache            *gocache.Cache
	sentimentPool    *ants.Pool
	entityPool       *ants.Pool
	logger           *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for the fan-out.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Service) error {
		if size < 1 {
			size = 1
		}

		if s.sentimentPool != nil {
			s.sentimentPool.Release()
		}
		if s.entityPool != nil {
			s.entityPool.Release()
		}

		sentimentPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		entityPool, err := ants.NewPool(size)
		if err != nil {
			sentimentPool.Release()
			return err
		}

		s.sentimentPool = sentimentPool
		s.entityPool = entityPool
		return nil
	}
}

// WithCallsPerSecond overrides the per-operation rate limit.
// Intended for tests; the production quota is 10 calls per second.
func WithCallsPerSecond(n float64) Option {
	return func(s *Service) error {
		if n <= 0 {
			return fmt.Errorf("calls per second must be positive")
		}
		s.sentimentLimiter = rate.NewLimiter(rate.Limit(n), 1)
		s.entityLimiter = rate.NewLimiter(rate.Limit(n), 1)
		return nil
	}
}

// NewService creates an analysis service around the given remote analyzer.
func NewService(analyzer ai.TextAnalyzer, opts ...Option) (*Service, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}

	sentimentPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	entityPool, err := ants.NewPool(poolSize)
	if err != nil {
		sentimentPool.Release()
		return nil, err
	}

	s := &Service{
		analyzer:         analyzer,
		sentimentLimiter: rate.NewLimiter(rate.Limit(defaultCallsPerSecond), 1),
		entityLimiter:    rate.NewLimiter(rate.Limit(defaultCallsPerSecond), 1),
		cache:            gocache.New(gocache.NoExpiration, 0),
		sentimentPool:    sentimentPool,
		entityPool:       entityPool,
		logger:           slog.Default().With("component", "analysis"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// AnalyzeSentiment returns the sentiment of text, or nil if the analysis
// failed. Results are memoized by exact text content for the lifetime of
// the service; cache misses block until the rate limiter allows the call.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) *core.Sentiment {
	key := sentimentKey(text)
	if cached, ok := s.cache.Get(key); ok {
		sentiment, _ := cached.(*core.Sentiment)
		return sentiment
	}

	if err := s.sentimentLimiter.Wait(ctx); err != nil {
		s.logger.Error("sentiment rate limiter interrupted", "err", err)
		return nil
	}

	sentiment, err := s.analyzer.AnalyzeSentiment(ctx, text)
	if err != nil {
		s.logger.Error("error in sentiment analysis", "err", err)
		sentiment = nil
	}

	// Failures are memoized too: the original service call was already
	// paid for and repeating it for identical text buys nothing.
	s.cache.Set(key, sentiment, gocache.NoExpiration)
	return sentiment
}

// AnalyzeEntities returns the entities mentioned in text, or an empty list
// if the analysis failed. Results are memoized by exact text content.
func (s *Service) AnalyzeEntities(ctx context.Context, text string) []core.Entity {
	key := entityKey(text)
	if cached, ok := s.cache.Get(key); ok {
		entities, _ := cached.([]core.Entity)
		return entities
	}

	if err := s.entityLimiter.Wait(ctx); err != nil {
		s.logger.Error("entity rate limiter interrupted", "err", err)
		return []core.Entity{}
	}

	entities, err := s.analyzer.AnalyzeEntities(ctx, text)
	if err != nil {
		s.logger.Error("error in entity analysis", "err", err)
		entities = []core.Entity{}
	}
	if entities == nil {
		entities = []core.Entity{}
	}

	s.cache.Set(key, entities, gocache.NoExpiration)
	return entities
}

// AnalyzeAll fans out sentiment and entity analysis for every section
// concurrently and gathers all results. Both returned slices have exactly
// one entry per section, in input order, regardless of completion order.
// AnalyzeAll returns only after every per-section task has resolved; a
// single section's failure never cancels or corrupts the others.
func (s *Service) AnalyzeAll(ctx context.Context, sections []string) ([]*core.Sentiment, [][]core.Entity) {
	sentiments := make([]*core.Sentiment, len(sections))
	entities := make([][]core.Entity, len(sections))

	var wg sync.WaitGroup
	for i, section := range sections {
		wg.Add(2)

		sentimentTask := func() {
			defer wg.Done()
			sentiments[i] = s.AnalyzeSentiment(ctx, section)
		}
		if err := s.sentimentPool.Submit(sentimentTask); err != nil {
			sentimentTask()
		}

		entityTask := func() {
			defer wg.Done()
			entities[i] = s.AnalyzeEntities(ctx, section)
		}
		if err := s.entityPool.Submit(entityTask); err != nil {
			entityTask()
		}
	}
	wg.Wait()

	return sentiments, entities
}

// Clear drops all memoized analysis results.
// Intended for tests that need a fresh process-like state.
func (s *Service) Clear() {
	s.cache.Flush()
}

// Release releases the worker pools. The service should not be used after
// calling Release.
func (s *Service) Release() {
	if s.sentimentPool != nil {
		s.sentimentPool.Release()
	}
	if s.entityPool != nil {
		s.entityPool.Release()
	}
}

// Cache keys are namespaced per operation so a sentiment result can never
// shadow an entity result for the same text.
func sentimentKey(text string) string {
	return fmt.Sprintf("s:%x", uint64(core.IDFromContent(text)))
}

func entityKey(text string) string {
	return fmt.Sprintf("e:%x", uint64(core.IDFromContent(text)))
}
