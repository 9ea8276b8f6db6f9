package state

import (
	"ai-support-chat-be/pkg/rag/category"
	"ai-support-chat-be/pkg/store"
)

// PipelineState is the working record threaded through the pipeline stages.
// Each field is written exactly once by its owning stage; later stages must
// not mutate earlier stages' fields.
type PipelineState struct {
	// Input state
	Question  string
	History   []store.ChatMessage
	SessionID string

	// Processing state (categorize, retrieve)
	Category            category.Category
	Context             []store.DocumentChunk
	ContextRelevance    float64
	ClarificationNeeded bool

	// Output state (generate, validate, refine, handoff)
	Answer               string
	NeedsRefinement      bool
	NeedsHumanAssistance bool
	FinalAnswer          string
}
