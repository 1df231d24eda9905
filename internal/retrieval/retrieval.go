// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/docquery/internal/ai"
	"github.com/docquery/internal/embeddings"
	"github.com/docquery/internal/vectordb"
)

// DefaultTopK is the number of records retrieved when the caller does not
// ask for a specific count.
const DefaultTopK = 3

const systemPrompt = "You are a helpful chatbot."

const promptTemplate = `You are an AI assistant answering questions based on retrieved documents.
Use the following information to answer the user's question. If the documents don't have the answer, say so.

### Retrieved Documents:
%s

### User Query:
%s

### Answer:
`

// NoDocumentsMessage is returned when the store yields no matches at all.
const NoDocumentsMessage = "No relevant documents found."

// Source identifies a retrieved record that contributed to an answer.
type Source struct {
	File string `json:"file"`
	Page string `json:"page"`
}

// Answer is the result of a retrieval+answer round.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Options tunes a single question.
type Options struct {
	// TopK limits retrieval; DefaultTopK when zero or negative.
	TopK int
	// Files, when non-empty, restricts answers to these source file names.
	Files []string
	// ScoreThreshold, when non-nil, drops hits below this similarity.
	ScoreThreshold *float32
}

// Answerer embeds a question, retrieves the nearest stored pages and asks the
// chat model to answer from them.
type Answerer struct {
	embedder embeddings.Embedder
	store    vectordb.Store
	chat     ai.ChatClient
}

// NewAnswerer wires the retrieval pipeline. All collaborators are required.
func NewAnswerer(embedder embeddings.Embedder, store vectordb.Store, chat ai.ChatClient) *Answerer {
	return &Answerer{embedder: embedder, store: store, chat: chat}
}

// Ask answers a user question from retrieved documents. Empty-result
// conditions are informational answers, never errors.
func (a *Answerer) Ask(ctx context.Context, query string, opts Options) (*Answer, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := a.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := a.store.SearchNearVector(ctx, vector, topK, opts.ScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		return &Answer{Answer: NoDocumentsMessage}, nil
	}

	if len(opts.Files) > 0 {
		hits = filterByFile(hits, opts.Files)
		if len(hits) == 0 {
			return &Answer{
				Answer: fmt.Sprintf("No relevant documents found in files: %s", strings.Join(opts.Files, ", ")),
			}, nil
		}
	}

	contextBlock := buildContext(hits)
	messages := []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(promptTemplate, contextBlock, query)},
	}

	answer, err := a.chat.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	sources := make([]Source, len(hits))
	for i, hit := range hits {
		sources[i] = Source{File: hit.File, Page: hit.Page}
	}

	log.Printf("Ask: topK=%d hits=%d files=%v", topK, len(hits), opts.Files)
	return &Answer{Answer: answer, Sources: sources}, nil
}

// filterByFile keeps hits whose file is in the allowed set, preserving the
// store's similarity ordering.
func filterByFile(hits []vectordb.Hit, allowed []string) []vectordb.Hit {
	set := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		set[f] = true
	}
	kept := hits[:0:0]
	for _, hit := range hits {
		if set[hit.File] {
			kept = append(kept, hit)
		}
	}
	return kept
}

// buildContext formats the retrieved records as the prompt's context block.
func buildContext(hits []vectordb.Hit) string {
	blocks := make([]string, len(hits))
	for i, hit := range hits {
		blocks[i] = fmt.Sprintf("File: %s, Page: %s\nText: %s", hit.File, hit.Page, hit.Text)
	}
	return strings.Join(blocks, "\n\n")
}
