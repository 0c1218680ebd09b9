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


package pagesim

import (
	"context"
	"log/slog"

	"github.com/poiesic/pagesim/ai"
	"github.com/poiesic/pagesim/ai/onnx"
	"github.com/poiesic/pagesim/ai/openai"
	"github.com/poiesic/pagesim/analysis"
	"github.com/poiesic/pagesim/core"
	"github.com/poiesic/pagesim/pipeline"
	"github.com/poiesic/pagesim/scrape"
)

// Registered embedding backend names.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Analyzer is the top-level entry point. It wires the scraper, the
// embedding backend registry, the text-analysis service, and the scoring
// pipeline into a single facade.
type Analyzer struct {
	scraper  *scrape.Scraper
	registry *ai.Registry
	service  *analysis.Service
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// Report is the full outcome of analyzing one webpage against a query.
type Report struct {
	Page        *core.Page
	Result      *core.Result
	Suggestions []core.Suggestion
	Average     float64
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerOptions)

type analyzerOptions struct {
	aiConfig      *ai.Config
	scraper       *scrape.Scraper
	analysisOpt   []analysis.Option
	extraBackends []namedBackend
	textAnalyzer  ai.TextAnalyzer
}

// WithAIConfig sets the embedding and analysis service configuration.
func WithAIConfig(config *ai.Config) AnalyzerOption {
	return func(o *analyzerOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithScraper replaces the default scraper.
func WithScraper(scraper *scrape.Scraper) AnalyzerOption {
	return func(o *analyzerOptions) {
		if scraper != nil {
			o.scraper = scraper
		}
	}
}

// WithAnalysisOptions forwards options to the text-analysis service.
func WithAnalysisOptions(opts ...analysis.Option) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.analysisOpt = append(o.analysisOpt, opts...)
	}
}

// WithExtraBackend registers an additional embedding backend alongside the
// built-in local and remote ones.
func WithExtraBackend(name string, factory ai.BackendFactory) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.extraBackends = append(o.extraBackends, namedBackend{name, factory})
	}
}

// WithTextAnalyzer replaces the default remote sentiment/entity analyzer.
func WithTextAnalyzer(analyzer ai.TextAnalyzer) AnalyzerOption {
	return func(o *analyzerOptions) {
		if analyzer != nil {
			o.textAnalyzer = analyzer
		}
	}
}

type namedBackend struct {
	name    string
	factory ai.BackendFactory
}

// NewAnalyzer builds a ready-to-use Analyzer. Embedding backends are
// registered lazily: the local ONNX model and the remote API client are
// loaded only when a run first names them.
func NewAnalyzer(opts ...AnalyzerOption) (*Analyzer, error) {
	options := &analyzerOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	registry := ai.NewRegistry()
	config := options.aiConfig
	registry.Register(BackendLocal, func() (ai.Embedder, error) {
		return onnx.NewEmbedder(config)
	})
	registry.Register(BackendRemote, func() (ai.Embedder, error) {
		return openai.NewEmbedder(config)
	})
	for _, backend := range options.extraBackends {
		registry.Register(backend.name, backend.factory)
	}

	textAnalyzer := options.textAnalyzer
	if textAnalyzer == nil {
		var err error
		textAnalyzer, err = openai.NewAnalyzer(config)
		if err != nil {
			return nil, err
		}
	}
	service, err := analysis.NewService(textAnalyzer, options.analysisOpt...)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.NewPipeline(registry, service)
	if err != nil {
		service.Release()
		return nil, err
	}

	scraper := options.scraper
	if scraper == nil {
		scraper = scrape.NewScraper()
	}

	return &Analyzer{
		scraper:  scraper,
		registry: registry,
		service:  service,
		pipeline: p,
		logger:   slog.Default(),
	}, nil
}

// AnalyzeURL fetches the webpage at url, scores every extracted section
// against query using the named embedding backend, and derives
// optimization suggestions for low-scoring sections.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url, query, backendName string) (*Report, error) {
	page, err := a.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.analyzePage(ctx, page, query, backendName)
}

// AnalyzeSections scores pre-extracted sections without fetching anything.
func (a *Analyzer) AnalyzeSections(ctx context.Context, sections []string, query, backendName string) (*Report, error) {
	return a.analyzePage(ctx, &core.Page{Title: "No Title", Sections: sections}, query, backendName)
}

func (a *Analyzer) analyzePage(ctx context.Context, page *core.Page, query, backendName string) (*Report, error) {
	result, err := a.pipeline.Run(ctx, page.Sections, query, backendName)
	if err != nil {
		return nil, err
	}

	return &Report{
		Page:        page,
		Result:      result,
		Suggestions: pipeline.Suggestions(result.Sections, result.Scores, query),
		Average:     result.AverageScore(),
	}, nil
}

// Backends lists the registered embedding backend names.
func (a *Analyzer) Backends() []string {
	return a.registry.Names()
}

// ClearAnalysisCache drops memoized sentiment and entity results.
func (a *Analyzer) ClearAnalysisCache() {
	a.service.Clear()
}

// Close releases the analysis worker pools. Cached backend handles are
// process-lifetime and are not released.
func (a *Analyzer) Close() {
	a.service.Release()
}
