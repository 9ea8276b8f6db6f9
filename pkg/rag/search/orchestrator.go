package search

import (
	"context"
	"fmt"
	"log"

	"ai-support-chat-be/internal/repository/contract"
	"ai-support-chat-be/pkg/embedding"
	"ai-support-chat-be/pkg/store"
)

// Orchestrator turns a plain-text query into a vector search: it embeds the
// query and asks the chunk repository for the nearest passages.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	chunkRepo         contract.DocumentChunkRepository
	logger            *log.Logger
}

// NewOrchestrator creates a new search orchestrator
func NewOrchestrator(
	embeddingProvider embedding.EmbeddingProvider,
	chunkRepo contract.DocumentChunkRepository,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		chunkRepo:         chunkRepo,
		logger:            logger,
	}
}

// SimilaritySearch returns the k chunks nearest to the query text, best match
// first. Errors propagate; the retriever decides how to degrade.
func (o *Orchestrator) SimilaritySearch(ctx context.Context, query string, k int) ([]store.DocumentChunk, error) {
	embeddingRes, err := o.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	chunks, err := o.chunkRepo.SearchSimilar(ctx, embeddingRes.Embedding.Values, k)
	if err != nil {
		o.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	o.logger.Printf("[DEBUG] Raw search results: %d chunks", len(chunks))
	return chunks, nil
}
