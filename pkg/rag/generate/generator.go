package generate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-support-chat-be/internal/constant"
	"ai-support-chat-be/pkg/llm"
	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/store"
)

// Generator assembles the RAG prompt and asks the LLM for an answer. It has
// no retry or fallback logic; provider errors propagate to the caller.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate produces an answer for the question from the retrieved context.
// The template with conversation history is selected only when history is
// non-empty.
func (g *Generator) Generate(
	ctx context.Context,
	question string,
	cat category.Category,
	chunks []store.DocumentChunk,
	history []store.ChatMessage,
) (string, error) {

	formattedContext := FormatContext(chunks)

	var messages []llm.Message
	if len(history) > 0 {
		messages = conversationalPrompt(question, formattedContext, FormatHistory(history))
	} else {
		messages = standardPrompt(question, formattedContext)
	}

	answer, err := g.llmProvider.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}

	g.logger.Printf("[GENERATION] Answer generated for category %s from %d chunks (history: %d messages)",
		cat, len(chunks), len(history))

	return answer, nil
}

// FormatContext renders chunks with source attribution, separated by blank
// lines.
func FormatContext(chunks []store.DocumentChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		source := chunk.Source
		if source == "" {
			source = "Company Document"
		}
		parts[i] = fmt.Sprintf("Source: %s\n%s", source, chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}

// FormatHistory renders the conversation window as alternating "role: content"
// lines.
func FormatHistory(history []store.ChatMessage) string {
	parts := make([]string, len(history))
	for i, msg := range history {
		parts[i] = fmt.Sprintf("%s: %s", msg.Role, msg.Content)
	}
	return strings.Join(parts, "\n\n")
}

func standardPrompt(question, formattedContext string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: constant.CompanySystemPromptV1},
		{Role: "user", Content: question},
		{Role: "system", Content: constant.ContextPreambleV1 + formattedContext},
		{Role: "system", Content: constant.ClosingReminderV1},
	}
}

func conversationalPrompt(question, formattedContext, historyText string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: constant.CompanySystemPromptV1},
		{Role: "system", Content: constant.HistoryPreambleV1 + historyText},
		{Role: "user", Content: question},
		{Role: "system", Content: constant.ContextPreambleV1 + formattedContext},
		{Role: "system", Content: constant.ConversationalClosingReminderV1},
	}
}
