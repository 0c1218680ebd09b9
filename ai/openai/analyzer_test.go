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
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns canned responses in order, cycling on the last one.
type fakeModel struct {
	responses []string
	calls     int
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.responses[idx]}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", nil
}

func newFakeAnalyzer(responses ...string) (*Analyzer, *fakeModel) {
	model := &fakeModel{responses: responses}
	return &Analyzer{client: model, logger: slog.Default()}, model
}

func TestAnalyzeSentiment(t *testing.T) {
	t.Run("parses and returns model output", func(t *testing.T) {
		a, _ := newFakeAnalyzer(`{"score": 0.8, "magnitude": 1.5}`)
		sentiment, err := a.AnalyzeSentiment(context.Background(), "great text")
		require.NoError(t, err)
		assert.InDelta(t, 0.8, sentiment.Score, 1e-6)
		assert.InDelta(t, 1.5, sentiment.Magnitude, 1e-6)
	})

	t.Run("clamps out-of-range values", func(t *testing.T) {
		a, _ := newFakeAnalyzer(`{"score": 3.5, "magnitude": -2}`)
		sentiment, err := a.AnalyzeSentiment(context.Background(), "text")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sentiment.Score, 1e-6)
		assert.InDelta(t, 0.0, sentiment.Magnitude, 1e-6)
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		a, _ := newFakeAnalyzer("```json\n{\"score\": -0.4, \"magnitude\": 0.6}\n```")
		sentiment, err := a.AnalyzeSentiment(context.Background(), "text")
		require.NoError(t, err)
		assert.InDelta(t, -0.4, sentiment.Score, 1e-6)
	})

	t.Run("re-requests on malformed JSON", func(t *testing.T) {
		a, model := newFakeAnalyzer("not json at all", `{"score": 0.1, "magnitude": 0.2}`)
		sentiment, err := a.AnalyzeSentiment(context.Background(), "text")
		require.NoError(t, err)
		assert.Equal(t, 2, model.calls)
		assert.InDelta(t, 0.1, sentiment.Score, 1e-6)
	})

	t.Run("persistent malformed JSON surfaces the parse error", func(t *testing.T) {
		a, model := newFakeAnalyzer("still not json")
		_, err := a.AnalyzeSentiment(context.Background(), "text")
		require.Error(t, err)
		assert.Equal(t, 3, model.calls)
	})
}

func TestAnalyzeEntities(t *testing.T) {
	t.Run("normalizes entity types", func(t *testing.T) {
		a, _ := newFakeAnalyzer(`{"entities": [
			{"name": "Berlin", "type": "location"},
			{"name": "Ada Lovelace", "type": "Person"},
			{"name": "mystery", "type": ""}
		]}`)
		entities, err := a.AnalyzeEntities(context.Background(), "text")
		require.NoError(t, err)
		require.Len(t, entities, 3)
		assert.Equal(t, "LOCATION", entities[0].Type)
		assert.Equal(t, "PERSON", entities[1].Type)
		assert.Equal(t, "OTHER", entities[2].Type)
	})

	t.Run("drops nameless entities", func(t *testing.T) {
		a, _ := newFakeAnalyzer(`{"entities": [{"name": "", "type": "PERSON"}]}`)
		entities, err := a.AnalyzeEntities(context.Background(), "text")
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("empty entity list", func(t *testing.T) {
		a, _ := newFakeAnalyzer(`{"entities": []}`)
		entities, err := a.AnalyzeEntities(context.Background(), "text")
		require.NoError(t, err)
		assert.Empty(t, entities)
	})
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
