// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package embeddings

import (
	"context"
	"fmt"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedText generates an embedding vector for the given text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts (more efficient).
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimension of the embedding vectors.
	Dimension() int
}

// Options configures the embedder built by New.
type Options struct {
	Type      string // "openai", "ollama", "mock"
	APIKey    string
	Model     string
	BaseURL   string
	Dimension int
}

// New creates an embedder from options.
// Supported types: "openai", "ollama", "mock" (for testing)
func New(opts Options) (Embedder, error) {
	switch opts.Type {
	case "openai":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai api key is required")
		}
		model := opts.Model
		if model == "" {
			model = "text-embedding-3-small" // default
		}
		return NewOpenAIEmbedder(opts.APIKey, model)
	case "ollama":
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := opts.Model
		if model == "" {
			model = "nomic-embed-text" // default
		}
		return NewOllamaEmbedder(baseURL, model)
	case "mock":
		dim := opts.Dimension
		if dim == 0 {
			dim = 384
		}
		return NewMockEmbedder(dim), nil
	default:
		return nil, fmt.Errorf("unknown embedder type: %s", opts.Type)
	}
}
