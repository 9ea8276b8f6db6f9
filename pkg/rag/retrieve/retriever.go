package retrieve

import (
	"context"
	"log"
	"regexp"
	"strings"

	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/rag/relevance"
	"ai-support-chat-be/pkg/store"
)

const (
	// fetchK is how many neighbors we pull from the vector store before the
	// lexical filtering and boosting passes.
	fetchK = 16

	// minFilteredChunks is the floor below which the category filter is
	// abandoned so the generator is not starved of context.
	minFilteredChunks = 3

	// maxContextChunks caps the context handed to the generator.
	maxContextChunks = 4

	// clarificationThreshold is the relevance below which we ask the user to
	// clarify instead of generating from weak context.
	clarificationThreshold = 0.15
)

// directQuestionPattern matches questions that open with an interrogative or
// auxiliary word, e.g. "What is...", "Can you...".
var directQuestionPattern = regexp.MustCompile(`(?i)^(what|how|who|where|when|why|can|does|do|is|are|should|could|would|will|may|did|has|have|had)\b`)

// VectorSearcher is the port to the external vector store.
type VectorSearcher interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]store.DocumentChunk, error)
}

// Result is what retrieval hands to the generator.
type Result struct {
	Context             []store.DocumentChunk
	ContextRelevance    float64
	ClarificationNeeded bool
}

// Retriever queries the vector store and applies the lexical filtering,
// boosting and reordering passes over the raw neighbors.
type Retriever struct {
	searcher VectorSearcher
	scorer   relevance.Scorer
	logger   *log.Logger
}

func NewRetriever(searcher VectorSearcher, scorer relevance.Scorer, logger *log.Logger) *Retriever {
	if scorer == nil {
		scorer = relevance.KeyTermScorer{}
	}
	return &Retriever{
		searcher: searcher,
		scorer:   scorer,
		logger:   logger,
	}
}

// Retrieve never returns an error: vector store failures degrade to an empty
// result set and the clarification path. The pipeline must not crash because
// retrieval hiccupped.
func (r *Retriever) Retrieve(ctx context.Context, question string, cat category.Category) Result {
	retrieved, err := r.searcher.SimilaritySearch(ctx, question, fetchK)
	if err != nil {
		r.logger.Printf("[WARN] Vector search error (continuing with empty results): %v", err)
		retrieved = nil
	}

	// Category filter is applied in memory, and dropped again when it leaves
	// too little context to answer from.
	filtered := retrieved
	if cat != category.General {
		filtered = filterByCategory(retrieved, cat)
		if len(filtered) < minFilteredChunks {
			filtered = retrieved
		}
	}

	boosted := filtered
	if directQuestionPattern.MatchString(strings.TrimSpace(question)) {
		boosted = boostFAQ(boosted)
	}
	boosted = boostTagMatches(boosted, question)

	ordered := relevance.Reorder(boosted, question, r.scorer)

	selected := ordered
	if len(selected) > maxContextChunks {
		selected = selected[:maxContextChunks]
	}

	score := relevance.ContextRelevance(selected, question)

	if len(selected) == 0 || score < clarificationThreshold {
		return Result{
			Context:             []store.DocumentChunk{},
			ContextRelevance:    0,
			ClarificationNeeded: true,
		}
	}

	return Result{
		Context:          selected,
		ContextRelevance: score,
	}
}

func filterByCategory(chunks []store.DocumentChunk, cat category.Category) []store.DocumentChunk {
	var filtered []store.DocumentChunk
	for _, chunk := range chunks {
		if chunk.Category == string(cat) {
			filtered = append(filtered, chunk)
		}
	}
	return filtered
}

// boostFAQ moves FAQ chunks to the front, preserving relative order within
// each group.
func boostFAQ(chunks []store.DocumentChunk) []store.DocumentChunk {
	var faq, rest []store.DocumentChunk
	for _, chunk := range chunks {
		if chunk.IsFAQ {
			faq = append(faq, chunk)
		} else {
			rest = append(rest, chunk)
		}
	}
	if len(faq) == 0 {
		return chunks
	}
	return append(faq, rest...)
}

// boostTagMatches moves chunks whose tags appear in the question to the front,
// preserving relative order within each group.
func boostTagMatches(chunks []store.DocumentChunk, question string) []store.DocumentChunk {
	questionLower := strings.ToLower(question)

	var matched, rest []store.DocumentChunk
	for _, chunk := range chunks {
		if tagInQuestion(chunk.Tags, questionLower) {
			matched = append(matched, chunk)
		} else {
			rest = append(rest, chunk)
		}
	}
	if len(matched) == 0 {
		return chunks
	}
	return append(matched, rest...)
}

func tagInQuestion(tags []string, questionLower string) bool {
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if strings.Contains(questionLower, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}
