package implementation

import (
	"context"
	"fmt"

	"ai-support-chat-be/internal/model"
	"ai-support-chat-be/internal/repository/contract"
	"ai-support-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentChunkRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{db: db}
}

func (r *DocumentChunkRepositoryImpl) Create(ctx context.Context, chunk *store.DocumentChunk, embedding []float32) error {
	m := toModel(chunk, embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	chunk.ID = m.Id.String()
	return nil
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []store.DocumentChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i := range chunks {
		models[i] = toModel(&chunks[i], embeddings[i])
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *DocumentChunkRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	return r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]store.DocumentChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	var models []*model.DocumentChunk

	// pgvector cosine distance: embedding <=> query, smaller is closer
	err := r.db.WithContext(ctx).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{pgvector.NewVector(embedding)},
		}}).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]store.DocumentChunk, len(models))
	for i, m := range models {
		chunks[i] = toStoreChunk(m)
	}
	return chunks, nil
}

func toModel(chunk *store.DocumentChunk, embedding []float32) *model.DocumentChunk {
	id := uuid.New()
	if chunk.ID != "" {
		if parsed, err := uuid.Parse(chunk.ID); err == nil {
			id = parsed
		}
	}
	return &model.DocumentChunk{
		Id:           id,
		Content:      chunk.Content,
		Source:       chunk.Source,
		Category:     chunk.Category,
		Tags:         datatypes.NewJSONSlice(chunk.Tags),
		IsFAQ:        chunk.IsFAQ,
		SectionTitle: chunk.Section,
		Embedding:    pgvector.NewVector(embedding),
	}
}

func toStoreChunk(m *model.DocumentChunk) store.DocumentChunk {
	return store.DocumentChunk{
		ID:       m.Id.String(),
		Content:  m.Content,
		Source:   m.Source,
		Category: m.Category,
		Tags:     m.Tags,
		IsFAQ:    m.IsFAQ,
		Section:  m.SectionTitle,
	}
}
