package handoff

import (
	"fmt"

	"ai-support-chat-be/internal/constant"
)

// summaryLimit caps how much of the question is echoed back in the handoff
// message.
const summaryLimit = 50

// Message builds the escalation message offered when confidence heuristics
// decide a human should take over.
func Message(question string) string {
	return fmt.Sprintf(constant.HumanHandoffTemplateV1, SummarizeQuestion(question))
}

// SummarizeQuestion truncates a long question for embedding in the handoff
// message.
func SummarizeQuestion(question string) string {
	runes := []rune(question)
	if len(runes) <= summaryLimit {
		return question
	}
	return string(runes[:summaryLimit]) + "..."
}
