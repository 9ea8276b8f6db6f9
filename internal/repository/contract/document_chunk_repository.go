package contract

import (
	"context"

	"ai-support-chat-be/pkg/store"
)

// DocumentChunkRepository is the persistence port for ingested documentation
// passages and their embeddings.
type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *store.DocumentChunk, embedding []float32) error
	CreateBulk(ctx context.Context, chunks []store.DocumentChunk, embeddings [][]float32) error
	DeleteBySource(ctx context.Context, source string) error
	Count(ctx context.Context) (int64, error)

	// SearchSimilar returns the chunks nearest to the query embedding by
	// cosine distance, best match first.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]store.DocumentChunk, error)
}
