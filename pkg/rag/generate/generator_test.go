package generate

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-support-chat-be/internal/constant"
	"ai-support-chat-be/pkg/llm"
	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply    string
	err      error
	lastSent []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.lastSent = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestFormatContext(t *testing.T) {
	chunks := []store.DocumentChunk{
		{Source: "wheat.md", Content: "Wheat protein is 12%."},
		{Source: "", Content: "Barley details."},
	}

	formatted := FormatContext(chunks)

	assert.Equal(t, "Source: wheat.md\nWheat protein is 12%.\n\nSource: Company Document\nBarley details.", formatted)
}

func TestFormatHistory(t *testing.T) {
	history := []store.ChatMessage{
		{Role: store.RoleHuman, Content: "hi"},
		{Role: store.RoleAssistant, Content: "hello"},
	}

	assert.Equal(t, "human: hi\n\nassistant: hello", FormatHistory(history))
}

func TestGenerateSelectsTemplateByHistory(t *testing.T) {
	provider := &fakeLLM{reply: "answer"}
	g := NewGenerator(provider, log.New(io.Discard, "", 0))

	chunks := []store.DocumentChunk{{Source: "wheat.md", Content: "Wheat protein is 12%."}}

	t.Run("without history", func(t *testing.T) {
		answer, err := g.Generate(context.Background(), "What is the protein content?", category.Commodities, chunks, nil)
		require.NoError(t, err)
		assert.Equal(t, "answer", answer)
		require.Len(t, provider.lastSent, 4)
		assert.Equal(t, constant.ClosingReminderV1, provider.lastSent[3].Content)
	})

	t.Run("with history", func(t *testing.T) {
		history := []store.ChatMessage{{Role: store.RoleHuman, Content: "earlier question"}}
		_, err := g.Generate(context.Background(), "And the moisture?", category.Commodities, chunks, history)
		require.NoError(t, err)
		require.Len(t, provider.lastSent, 5)
		assert.True(t, strings.HasPrefix(provider.lastSent[1].Content, constant.HistoryPreambleV1))
		assert.Contains(t, provider.lastSent[1].Content, "human: earlier question")
		assert.Equal(t, constant.ConversationalClosingReminderV1, provider.lastSent[4].Content)
	})
}

func TestGeneratePropagatesLLMError(t *testing.T) {
	provider := &fakeLLM{err: errors.New("model overloaded")}
	g := NewGenerator(provider, log.New(io.Discard, "", 0))

	_, err := g.Generate(context.Background(), "question", category.General, nil, nil)

	assert.Error(t, err)
}
