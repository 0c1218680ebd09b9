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


// Package scoring computes similarity scores between a query embedding and
// section embeddings. Scores are cosine similarity rescaled to the 0-10
// range used throughout the reporting surfaces.
package scoring

import (
	"fmt"
	"math"

	"github.com/poiesic/pagesim/core"
)

// scoreScale maps cosine similarity onto the user-facing score range.
// NOTE: the x10 rescale is only a true [0,10] mapping for non-negative
// cosine values. Embeddings with negative cosine produce negative scores;
// the formula is kept as-is for compatibility with existing reports.
const scoreScale = 10.0

// Score computes one similarity score per section vector, in input order.
// The query and all section vectors must come from the same embedding
// backend; comparing vectors of different dimensionality returns an error
// wrapping core.ErrDimensionMismatch.
func Score(query []float32, sections [][]float32) ([]float64, error) {
	scores := make([]float64, len(sections))
	for i, section := range sections {
		if len(section) != len(query) {
			return nil, fmt.Errorf("section %d: %w: query has %d dimensions, section has %d",
				i, core.ErrDimensionMismatch, len(query), len(section))
		}
		scores[i] = Cosine(query, section) * scoreScale
	}
	return scores, nil
}

// Cosine computes the cosine similarity between two equal-length vectors.
// A zero vector on either side yields 0 rather than dividing by zero.
func Cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
