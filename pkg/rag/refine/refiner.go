package refine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-support-chat-be/internal/constant"
	"ai-support-chat-be/pkg/llm"
	"ai-support-chat-be/pkg/store"
)

// Refiner asks the LLM to rewrite a draft answer that failed quality
// validation. It runs at most once per pipeline invocation.
type Refiner struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewRefiner(llmProvider llm.LLMProvider, logger *log.Logger) *Refiner {
	return &Refiner{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Refine rewrites the draft using only the retrieved context. Provider errors
// propagate to the caller.
func (r *Refiner) Refine(ctx context.Context, question string, chunks []store.DocumentChunk, answer string) (string, error) {
	contextText := make([]string, len(chunks))
	for i, chunk := range chunks {
		contextText[i] = chunk.Content
	}

	messages := []llm.Message{
		{Role: "system", Content: constant.RefinementSystemPromptV1},
		{Role: "system", Content: "Original question: " + question},
		{Role: "system", Content: "Context information: " + strings.Join(contextText, "\n\n")},
		{Role: "system", Content: "Original answer: " + answer},
		{Role: "system", Content: constant.RefinementInstructionV1},
	}

	refined, err := r.llmProvider.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("answer refinement failed: %w", err)
	}

	r.logger.Printf("[REFINEMENT] Draft rewritten (%d -> %d characters)", len(answer), len(refined))
	return refined, nil
}
