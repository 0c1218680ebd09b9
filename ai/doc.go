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


// Package ai provides abstractions for the AI services used in Pagesim.
//
// This package defines interfaces for generating text embeddings and for
// remote sentiment/entity analysis. The core scoring pipeline depends only
// on these abstractions, never on a concrete provider.
//
// # Design Principles
//
// The package is designed around two key interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - TextAnalyzer: performs sentiment and entity analysis
//
// plus a Registry that maps user-facing backend names to Embedder
// implementations and memoizes the loaded handle per name for the lifetime
// of the process.
//
// # Implementation Packages
//
//   - ai/openai: remote implementations using OpenAI-compatible APIs
//   - ai/onnx: deterministic offline embedding backend using onnxruntime
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewEmbedder, onnx.NewEmbedder, ...) return
// INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewEmbedder, mock.NewAnalyzer) return CONCRETE types so tests can
// assert call counts and inject behavior.
//
// # Usage Example
//
//	registry := ai.NewRegistry()
//	registry.Register("remote-openai", func() (ai.Embedder, error) {
//	    return openai.NewEmbedder(cfg)
//	})
//
//	backend, err := registry.Load("remote-openai")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vectors, err := backend.EmbedTexts(ctx, sections)
//
// The query and all sections of one run must be embedded with the same
// loaded handle; vectors from different backends are not comparable.
package ai
