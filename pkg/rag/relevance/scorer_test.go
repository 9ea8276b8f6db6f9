package relevance

import (
	"testing"

	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeyTerms(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "drops interrogatives and short words",
			question: "What does your wheat flour contain?",
			want:     []string{"your", "wheat", "flour", "contain"},
		},
		{
			name:     "empty question",
			question: "",
			want:     nil,
		},
		{
			name:     "only stopwords",
			question: "what about how why",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeyTerms(tt.question))
		})
	}
}

func TestContextRelevance(t *testing.T) {
	chunk := func(content string) store.DocumentChunk {
		return store.DocumentChunk{Content: content}
	}

	t.Run("empty context scores zero", func(t *testing.T) {
		assert.Zero(t, ContextRelevance(nil, "wheat protein content"))
	})

	t.Run("full overlap scores one", func(t *testing.T) {
		chunks := []store.DocumentChunk{chunk("Our wheat has high protein content levels.")}
		score := ContextRelevance(chunks, "wheat protein content")
		assert.Equal(t, 1.0, score)
	})

	t.Run("partial overlap averages across chunks", func(t *testing.T) {
		chunks := []store.DocumentChunk{
			chunk("wheat protein content"), // 3/3
			chunk("irrelevant text"),       // 0/3
		}
		score := ContextRelevance(chunks, "wheat protein content")
		assert.InDelta(t, 0.5, score, 1e-9)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		chunks := []store.DocumentChunk{
			chunk("wheat wheat wheat protein protein content content content"),
		}
		score := ContextRelevance(chunks, "wheat protein content")
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})
}

func TestReorder(t *testing.T) {
	chunks := []store.DocumentChunk{
		{ID: "a", Content: "nothing to see here"},
		{ID: "b", Content: "wheat quality and wheat protein levels"},
		{ID: "c", Content: "some wheat information"},
	}

	reordered := Reorder(chunks, "What is your wheat protein content?", nil)

	assert.Equal(t, "b", reordered[0].ID)
	assert.Equal(t, "c", reordered[1].ID)
	assert.Equal(t, "a", reordered[2].ID)
}

func TestReorderStability(t *testing.T) {
	// Equal-scoring chunks must keep their incoming order so FAQ and tag
	// boosts applied upstream survive the sort.
	chunks := []store.DocumentChunk{
		{ID: "first", Content: "wheat"},
		{ID: "second", Content: "wheat"},
		{ID: "third", Content: "wheat"},
	}

	reordered := Reorder(chunks, "wheat availability", nil)

	assert.Equal(t, "first", reordered[0].ID)
	assert.Equal(t, "second", reordered[1].ID)
	assert.Equal(t, "third", reordered[2].ID)
}
