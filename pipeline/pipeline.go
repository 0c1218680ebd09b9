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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/pagesim/ai"
	"github.com/poiesic/pagesim/analysis"
	"github.com/poiesic/pagesim/core"
	"github.com/poiesic/pagesim/scoring"
	"github.com/poiesic/pagesim/textnorm"
)

// Pipeline composes normalization, embedding, scoring and text analysis
// into one end-to-end run over a page's sections.
type Pipeline struct {
	registry *ai.Registry
	analysis *analysis.Service
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an analysis pipeline.
func NewPipeline(registry *ai.Registry, analysisService *analysis.Service, opts ...Option) (*Pipeline, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if analysisService == nil {
		return nil, ErrAnalysisServiceRequired
	}

	p := &Pipeline{
		registry: registry,
		analysis: analysisService,
		logger:   slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run scores every section against the query using the named embedding
// backend and augments the scores with sentiment/entity analysis of the
// raw section text.
//
// All four output sequences of the Result are aligned by section index.
// Any stage failure short-circuits the remaining stages and yields
// (nil, err): a partial Result is never returned.
func (p *Pipeline) Run(ctx context.Context, sections []string, query, backendName string) (*core.Result, error) {
	return p.RunWithMonitor(ctx, sections, query, backendName, nil)
}

// RunWithMonitor is Run with observation hooks at each stage.
func (p *Pipeline) RunWithMonitor(ctx context.Context, sections []string, query, backendName string, monitor RunMonitor) (*core.Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query, backendName)

	// Malformed input short-circuits before any remote service is contacted.
	if len(sections) == 0 {
		p.logger.Error("no sections to analyze")
		return nil, core.ErrNoSections
	}
	if strings.TrimSpace(query) == "" {
		p.logger.Error("empty query")
		return nil, core.ErrEmptyQuery
	}

	normalizedSections := textnorm.NormalizeAll(sections)
	normalizedQuery := textnorm.Normalize(query)
	monitor.AfterNormalize(normalizedSections, normalizedQuery)

	// One backend handle embeds both the query and every section; vectors
	// from different backends are never comparable.
	backend, err := p.registry.Load(backendName)
	if err != nil {
		p.logger.Error("error loading embedding backend", "backend", backendName, "err", err)
		return nil, err
	}

	queryVector, err := backend.EmbedText(ctx, normalizedQuery)
	if err != nil {
		p.logger.Error("error embedding query", "err", err)
		return nil, err
	}

	sectionVectors, err := backend.EmbedTexts(ctx, normalizedSections)
	if err != nil {
		p.logger.Error("error embedding sections", "count", len(sections), "err", err)
		return nil, err
	}
	if len(sectionVectors) != len(sections) {
		return nil, fmt.Errorf("embedding result mismatch. expected %d, received %d",
			len(sections), len(sectionVectors))
	}
	monitor.AfterEmbedding(len(queryVector))

	scores, err := scoring.Score(queryVector, sectionVectors)
	if err != nil {
		p.logger.Error("error scoring sections", "err", err)
		return nil, err
	}
	monitor.AfterScoring(scores)

	// Sentiment and entity analysis run over the RAW section text, not the
	// normalized form; the suggestion logic compares raw text too.
	sentiments, entities := p.analysis.AnalyzeAll(ctx, sections)
	monitor.AfterAnalysis(sentiments, entities)

	result := &core.Result{
		Sections:   sections,
		Scores:     scores,
		Sentiments: sentiments,
		Entities:   entities,
	}
	monitor.Finish(result)

	return result, nil
}
