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


// Package openai provides remote implementations of the ai interfaces
// using OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM, ...).
//
// The Embedder issues one network call per text and retries quota,
// availability and deadline failures with exponential backoff (2s doubling,
// 60s per-attempt cap, 600s total ceiling). Any other failure is terminal
// and fails the whole batch.
//
// The Analyzer performs sentiment and entity analysis through JSON-mode
// chat completions. It is intentionally retry-free; transient analysis
// failures degrade per section at the caller instead.
package openai
