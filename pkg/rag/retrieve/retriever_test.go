package retrieve

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	chunks []store.DocumentChunk
	err    error
	lastK  int
}

func (f *fakeSearcher) SimilaritySearch(_ context.Context, _ string, k int) ([]store.DocumentChunk, error) {
	f.lastK = k
	return f.chunks, f.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func commodityChunk(id, content string, faq bool, tags ...string) store.DocumentChunk {
	return store.DocumentChunk{
		ID:       id,
		Content:  content,
		Source:   id + ".md",
		Category: string(category.Commodities),
		IsFAQ:    faq,
		Tags:     tags,
	}
}

func TestRetrieveDegradesOnSearchError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("vector store down")}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "What is your wheat protein content?", category.Commodities)

	assert.Empty(t, result.Context)
	assert.Zero(t, result.ContextRelevance)
	assert.True(t, result.ClarificationNeeded)
}

func TestRetrieveFetchesTopSixteen(t *testing.T) {
	searcher := &fakeSearcher{}
	r := NewRetriever(searcher, nil, discardLogger())

	r.Retrieve(context.Background(), "wheat", category.General)

	assert.Equal(t, 16, searcher.lastK)
}

func TestRetrieveTruncatesToFourChunks(t *testing.T) {
	var chunks []store.DocumentChunk
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		chunks = append(chunks, commodityChunk(id, "wheat protein content details", false))
	}
	searcher := &fakeSearcher{chunks: chunks}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "What is your wheat protein content?", category.Commodities)

	assert.Len(t, result.Context, 4)
	assert.False(t, result.ClarificationNeeded)
	assert.GreaterOrEqual(t, result.ContextRelevance, 0.0)
	assert.LessOrEqual(t, result.ContextRelevance, 1.0)
}

func TestRetrieveCategoryFilterFallback(t *testing.T) {
	// Only two chunks match the category; the filter must be abandoned so the
	// generator still gets context.
	chunks := []store.DocumentChunk{
		commodityChunk("a", "wheat protein content", false),
		commodityChunk("b", "wheat protein content", false),
		{ID: "c", Content: "wheat protein content", Category: string(category.Transport)},
		{ID: "d", Content: "wheat protein content", Category: string(category.Transport)},
	}
	searcher := &fakeSearcher{chunks: chunks}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "What is your wheat protein content?", category.Commodities)

	assert.Len(t, result.Context, 4)
}

func TestRetrieveFAQBoostOnDirectQuestion(t *testing.T) {
	chunks := []store.DocumentChunk{
		commodityChunk("plain1", "wheat protein content specification", false),
		commodityChunk("faq1", "wheat protein content specification", true),
		commodityChunk("plain2", "wheat protein content specification", false),
		commodityChunk("faq2", "wheat protein content specification", true),
		commodityChunk("plain3", "wheat protein content specification", false),
	}
	searcher := &fakeSearcher{chunks: chunks}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "What is your company's wheat protein content?", category.Commodities)

	require.Len(t, result.Context, 4)
	assert.Equal(t, "faq1", result.Context[0].ID)
	assert.Equal(t, "faq2", result.Context[1].ID)
}

func TestRetrieveNoFAQBoostWithoutDirectQuestion(t *testing.T) {
	chunks := []store.DocumentChunk{
		commodityChunk("plain1", "wheat protein content specification", false),
		commodityChunk("faq1", "wheat protein content specification", true),
		commodityChunk("plain2", "wheat protein content specification", false),
	}
	searcher := &fakeSearcher{chunks: chunks}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "Tell me about wheat protein content specification", category.Commodities)

	require.NotEmpty(t, result.Context)
	assert.Equal(t, "plain1", result.Context[0].ID)
}

func TestRetrieveTagBoost(t *testing.T) {
	chunks := []store.DocumentChunk{
		commodityChunk("untagged", "barley quality details and protein", false),
		commodityChunk("tagged", "barley quality details and protein", false, "barley"),
		commodityChunk("other", "barley quality details and protein", false, "rail"),
	}
	searcher := &fakeSearcher{chunks: chunks}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "Tell me about barley quality and protein", category.Commodities)

	require.NotEmpty(t, result.Context)
	assert.Equal(t, "tagged", result.Context[0].ID)
}

func TestRetrieveClarificationOnLowRelevance(t *testing.T) {
	chunks := []store.DocumentChunk{
		commodityChunk("a", "completely unrelated material", false),
		commodityChunk("b", "nothing in common either", false),
		commodityChunk("c", "still nothing useful", false),
	}
	searcher := &fakeSearcher{chunks: chunks}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "What is your wheat protein content?", category.Commodities)

	assert.True(t, result.ClarificationNeeded)
	assert.Empty(t, result.Context)
	assert.Zero(t, result.ContextRelevance)
}

func TestRetrieveEmptyStore(t *testing.T) {
	searcher := &fakeSearcher{}
	r := NewRetriever(searcher, nil, discardLogger())

	result := r.Retrieve(context.Background(), "What is your wheat protein content?", category.Commodities)

	assert.True(t, result.ClarificationNeeded)
	assert.Empty(t, result.Context)
}
