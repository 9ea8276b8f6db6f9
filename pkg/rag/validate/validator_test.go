package validate

import (
	"strings"
	"testing"

	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

const longRelevantAnswer = "Our wheat typically contains between twelve and fourteen percent protein " +
	"depending on the growing season, and we can supply full specification sheets " +
	"for every shipment on request."

func TestAnswerAcceptable(t *testing.T) {
	question := "What is your wheat protein content?"

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{
			name:   "long relevant answer passes",
			answer: longRelevantAnswer,
			want:   true,
		},
		{
			name:   "short answer always fails",
			answer: "Wheat protein is twelve percent.",
			want:   false,
		},
		{
			name:   "uncertainty phrase fails",
			answer: "I'm not sure about the wheat protein figures, " + longRelevantAnswer,
			want:   false,
		},
		{
			name: "long answer missing every key term fails",
			answer: strings.Repeat("This response talks at length without ever touching the topic asked. ", 3),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnswerAcceptable(tt.answer, question))
		})
	}
}

func TestNeedsHumanHelpShortCircuits(t *testing.T) {
	uncertain := "I don't know the answer to that."

	tests := []struct {
		name     string
		question string
	}{
		{name: "plain greeting", question: "hi"},
		{name: "greeting sentence", question: "hello there"},
		{name: "thanks", question: "thanks a lot"},
		{name: "question about the assistant", question: "who are you exactly?"},
		{name: "two word question", question: "wheat price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Empty context means relevance 0, which would otherwise escalate
			assert.False(t, NeedsHumanHelp(tt.question, nil, uncertain))
		})
	}
}

func TestNeedsHumanHelp(t *testing.T) {
	relevantContext := []store.DocumentChunk{
		{Content: "custom pricing quote negotiation supply contract terms for your order"},
	}

	t.Run("complex request with low relevance escalates", func(t *testing.T) {
		got := NeedsHumanHelp(
			"Can you give me a custom pricing quote for a large order?",
			nil,
			"Our pricing depends on several factors.",
		)
		assert.True(t, got)
	})

	t.Run("uncertain answer with low relevance escalates", func(t *testing.T) {
		got := NeedsHumanHelp(
			"Do you ship refrigerated pharmaceutical freight to Antarctica?",
			nil,
			"I don't know whether we support that lane.",
		)
		assert.True(t, got)
	})

	t.Run("high relevance suppresses escalation", func(t *testing.T) {
		got := NeedsHumanHelp(
			"Can you give me a custom pricing quote for my order?",
			relevantContext,
			"I don't know the exact figure.",
		)
		assert.False(t, got)
	})

	t.Run("confident answer to ordinary question stays with the bot", func(t *testing.T) {
		got := NeedsHumanHelp(
			"How long does ocean shipping usually take?",
			nil,
			"Ocean shipping typically takes three to six weeks depending on the route.",
		)
		assert.False(t, got)
	})
}

func TestValidateCombinesBothHeuristics(t *testing.T) {
	v := NewValidator()

	decision := v.Validate("Too short.", "What is your wheat protein content?", nil)

	assert.True(t, decision.NeedsRefinement)
	assert.False(t, decision.NeedsHumanAssistance)
}
