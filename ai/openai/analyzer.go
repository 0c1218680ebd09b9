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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/pagesim/ai"
	"github.com/poiesic/pagesim/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Analyzer implements ai.TextAnalyzer using OpenAI-compatible chat APIs.
// Each analysis is a single chat completion constrained to JSON output.
type Analyzer struct {
	client llms.Model
	logger *slog.Logger
}

// sentimentResponse matches the JSON structure requested from the model.
type sentimentResponse struct {
	Score     float32 `json:"score"`
	Magnitude float32 `json:"magnitude"`
}

// entity is an internal type used for JSON unmarshaling.
type entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// entityResponse is the wrapper structure for the model's entity JSON.
type entityResponse struct {
	Entities []entity `json:"entities"`
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.AnalyzerHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.AnalyzerModel),
		openai.WithHTTPClient(&http.Client{Timeout: connectTimeout}),
	)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewAnalyzer creates a remote text analyzer using the provided configuration.
//
// Returns ai.TextAnalyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.TextAnalyzer, error) {
	return newAnalyzer(config)
}

// AnalyzeSentiment returns the document-level sentiment of the text.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string) (*core.Sentiment, error) {
	var result sentimentResponse
	if err := a.generateJSON(ctx, buildSentimentPrompt(), text, &result); err != nil {
		return nil, err
	}

	// Clamp out-of-range model output instead of failing the section.
	if result.Score > 1 {
		result.Score = 1
	}
	if result.Score < -1 {
		result.Score = -1
	}
	if result.Magnitude < 0 {
		result.Magnitude = 0
	}

	return &core.Sentiment{Score: result.Score, Magnitude: result.Magnitude}, nil
}

// AnalyzeEntities returns the named entities mentioned in the text, in
// order of first appearance.
func (a *Analyzer) AnalyzeEntities(ctx context.Context, text string) ([]core.Entity, error) {
	var result entityResponse
	if err := a.generateJSON(ctx, buildEntityPrompt(), text, &result); err != nil {
		return nil, err
	}

	entities := make([]core.Entity, 0, len(result.Entities))
	for _, e := range result.Entities {
		if e.Name == "" {
			continue
		}
		kind := strings.ToUpper(strings.ReplaceAll(e.Type, " ", "_"))
		if kind == "" {
			kind = "OTHER"
		}
		entities = append(entities, core.Entity{Name: e.Name, Type: kind})
	}
	return entities, nil
}

// generateJSON runs one chat completion and unmarshals the JSON response
// into out. Malformed responses are re-requested up to 3 times before the
// last parse error is surfaced.
func (a *Analyzer) generateJSON(ctx context.Context, systemPrompt, text string, out any) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			return fmt.Errorf("analyzer returned no choices")
		}

		responseText := stripFences(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			a.logger.Warn("error parsing analyzer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}
		return nil
	}

	a.logger.Error("failed to parse analyzer response after retries", "err", lastErr)
	return lastErr
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
