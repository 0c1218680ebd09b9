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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the remote embedding and text-analysis
// services and for the local ONNX embedding backend.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// AnalyzerHost is the base URL for the sentiment/entity analysis service API.
	AnalyzerHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small", "embeddinggemma"
	EmbeddingModel string

	// AnalyzerModel is the model identifier to use for sentiment and entity
	// analysis. Example: "qwen2.5:3b", "gpt-4o-mini"
	AnalyzerModel string

	// APIKey authenticates against the remote services. Use "none" for
	// local OpenAI-compatible servers that skip authentication.
	APIKey string

	// LocalModelPath is the path to the ONNX model used by the local
	// embedding backend.
	LocalModelPath string

	// LocalTokenizerPath is the path to the tokenizer.json matching the
	// local ONNX model.
	LocalTokenizerPath string

	// OrtLibraryPath optionally points at the onnxruntime shared library.
	// Empty means the platform default lookup.
	OrtLibraryPath string

	// MaxSeqLen caps the token length of local backend inputs.
	// Default: 256
	MaxSeqLen int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithAnalyzerHost sets the analysis service host URL.
func WithAnalyzerHost(host string) ConfigOption {
	return func(c *Config) {
		c.AnalyzerHost = host
	}
}

// WithHost sets both embedding and analyzer hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.AnalyzerHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAnalyzerModel sets the analyzer model identifier.
func WithAnalyzerModel(model string) ConfigOption {
	return func(c *Config) {
		c.AnalyzerModel = model
	}
}

// WithAPIKey sets the remote service credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithLocalModel sets the ONNX model and tokenizer paths for the local backend.
func WithLocalModel(modelPath, tokenizerPath string) ConfigOption {
	return func(c *Config) {
		c.LocalModelPath = modelPath
		c.LocalTokenizerPath = tokenizerPath
	}
}

// WithOrtLibrary sets the onnxruntime shared library path.
func WithOrtLibrary(path string) ConfigOption {
	return func(c *Config) {
		c.OrtLibraryPath = path
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services and a bundled MiniLM-class local model.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:      defaultHost,
		AnalyzerHost:       defaultHost,
		EmbeddingModel:     "embeddinggemma",
		AnalyzerModel:      "qwen2.5:3b",
		APIKey:             "none",
		LocalModelPath:     "models/all-MiniLM-L6-v2/model.onnx",
		LocalTokenizerPath: "models/all-MiniLM-L6-v2/tokenizer.json",
		MaxSeqLen:          256,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the
// /v1 suffix to hosts if missing, which is required by most OpenAI-compatible
// APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.AnalyzerHost != "" && !strings.HasSuffix(c.AnalyzerHost, "/v1") {
		c.AnalyzerHost = strings.TrimSuffix(c.AnalyzerHost, "/") + "/v1"
	}
	if c.MaxSeqLen <= 0 {
		c.MaxSeqLen = 256
	}
}

// Validate checks that the configuration is valid and complete for the
// remote services. It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.AnalyzerHost == "" {
		return errors.New("ai config: AnalyzerHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.AnalyzerModel == "" {
		return errors.New("ai config: AnalyzerModel is required")
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
