package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ai-support-chat-be/internal/config"
	"ai-support-chat-be/internal/repository/implementation"
	"ai-support-chat-be/pkg/database"
	"ai-support-chat-be/pkg/embedding"
	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/store"
	"ai-support-chat-be/pkg/utils"

	"github.com/google/uuid"
)

// Chunking tuned for embedding context limits: ~1500 chars per chunk with a
// 200 char overlap to preserve continuity at boundaries.
const (
	chunkSize    = 1500
	chunkOverlap = 200
)

func main() {
	docsDir := flag.String("dir", "./docs", "directory of markdown documents to ingest")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	} else {
		provider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "", cfg.Ai.EmbeddingModel)
	}

	chunkRepo := implementation.NewDocumentChunkRepository(db)
	ctx := context.Background()

	entries, err := os.ReadDir(*docsDir)
	if err != nil {
		log.Fatalf("Error: Failed to read docs directory %s: %v", *docsDir, err)
	}

	totalChunks := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(*docsDir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warn: Skipping %s: %v", entry.Name(), err)
			continue
		}
		content := string(raw)

		docCategory := category.IdentifyDocument(entry.Name(), content)
		isFAQ := strings.Contains(strings.ToLower(entry.Name()), "faq")

		// Re-seeding a file replaces its previous chunks
		if err := chunkRepo.DeleteBySource(ctx, entry.Name()); err != nil {
			log.Fatalf("Error: Failed to delete old chunks for %s: %v", entry.Name(), err)
		}

		pieces := utils.SplitText(content, chunkSize, chunkOverlap)
		log.Printf("[INFO] %s: category=%s faq=%v chunks=%d", entry.Name(), docCategory, isFAQ, len(pieces))

		chunks := make([]store.DocumentChunk, 0, len(pieces))
		embeddings := make([][]float32, 0, len(pieces))
		for i, piece := range pieces {
			res, err := provider.Generate(piece, "RETRIEVAL_DOCUMENT")
			if err != nil {
				log.Fatalf("Error: Embedding failed for %s chunk %d: %v", entry.Name(), i, err)
			}

			chunks = append(chunks, store.DocumentChunk{
				ID:       uuid.New().String(),
				Content:  piece,
				Source:   entry.Name(),
				Category: string(docCategory),
				Tags:     extractTags(piece, docCategory),
				IsFAQ:    isFAQ,
				Section:  sectionTitle(piece),
			})
			embeddings = append(embeddings, res.Embedding.Values)
		}

		if err := chunkRepo.CreateBulk(ctx, chunks, embeddings); err != nil {
			log.Fatalf("Error: Failed to store chunks for %s: %v", entry.Name(), err)
		}
		totalChunks += len(chunks)
	}

	count, err := chunkRepo.Count(ctx)
	if err != nil {
		log.Printf("Warn: Failed to count chunks: %v", err)
	}

	log.Printf("✅ Seeding completed: %d chunks ingested (%d total in store)", totalChunks, count)
}

// extractTags records which of the category's keywords actually occur in the
// chunk, so retrieval can boost chunks whose tags appear in the question.
func extractTags(content string, cat category.Category) []string {
	lowered := strings.ToLower(content)

	var tags []string
	for _, keyword := range category.Keywords(cat) {
		if strings.Contains(lowered, keyword) {
			tags = append(tags, keyword)
		}
	}
	return tags
}

// sectionTitle returns the first markdown heading of the chunk, if any.
func sectionTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		}
	}
	return ""
}
