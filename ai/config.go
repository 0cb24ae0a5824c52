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

// Config holds configuration for embedding service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible
	// server.
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model name.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// DefaultConfig returns a Config targeting a local OpenAI-compatible
// service, adjusted by the given options.
func DefaultConfig(opts ...ConfigOption) *Config {
	c := &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embeddinggemma",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config validation errors.
var (
	ErrEmptyEmbeddingHost  = errors.New("embedding host cannot be empty")
	ErrInvalidHostURL      = errors.New("host URL must start with http:// or https://")
	ErrEmptyEmbeddingModel = errors.New("embedding model cannot be empty")
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.EmbeddingHost == "" {
		return ErrEmptyEmbeddingHost
	}
	if !strings.HasPrefix(c.EmbeddingHost, "http://") && !strings.HasPrefix(c.EmbeddingHost, "https://") {
		return ErrInvalidHostURL
	}
	if c.EmbeddingModel == "" {
		return ErrEmptyEmbeddingModel
	}
	return nil
}
