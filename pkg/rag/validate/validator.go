package validate

import (
	"strings"

	"ai-support-chat-be/pkg/rag/relevance"
	"ai-support-chat-be/pkg/store"
)

// humanAssistRelevanceThreshold is the context relevance below which a
// handoff becomes possible.
const humanAssistRelevanceThreshold = 0.3

// minAnswerWords is the floor under which an answer is considered
// insufficient regardless of content.
const minAnswerWords = 20

// uncertaintyPhrases flag "I don't know"-style answers during quality
// validation.
var uncertaintyPhrases = []string{
	"i don't know", "i'm not sure", "i don't have enough information",
	"i can't answer", "cannot provide", "don't have specific",
	"unable to provide", "don't have information",
}

// handoffUncertaintyPhrases is the shorter list used by the human-assistance
// heuristic.
var handoffUncertaintyPhrases = []string{
	"i don't know", "i'm not sure", "i don't have enough information",
	"i can't answer", "cannot provide", "don't have specific",
}

// commonGreetings and casual interactions never trigger human assistance.
var commonGreetings = []string{
	"hello", "hi", "hey", "greetings", "good morning",
	"good afternoon", "good evening", "howdy",
	"how are you", "how's it going", "what's up",
	"nice to meet you", "pleasure to meet you",
	"thanks", "thank you", "appreciate it",
}

// simpleQuestionPatterns are questions about the assistant itself.
var simpleQuestionPatterns = []string{
	"who are you", "what can you do", "what is your name",
	"your purpose", "how do you work", "help me with",
	"tell me about", "explain", "what are you",
	"how can you help",
}

// complexRequestIndicators mark questions that may need a sales specialist.
var complexRequestIndicators = []string{
	"quote", "pricing", "custom", "contact", "representative",
	"discount", "negotiate", "specific offer", "personal", "account",
}

// Decision is the validator's verdict on a generated answer.
type Decision struct {
	NeedsRefinement      bool
	NeedsHumanAssistance bool
}

// Validator scores answers for acceptability and decides whether a human
// should take over.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate applies both heuristics to the generated answer.
func (v *Validator) Validate(answer, question string, context []store.DocumentChunk) Decision {
	return Decision{
		NeedsRefinement:      !AnswerAcceptable(answer, question),
		NeedsHumanAssistance: NeedsHumanHelp(question, context, answer),
	}
}

// AnswerAcceptable is true iff the answer is long enough, addresses at least
// one key term from the question, and shows no uncertainty.
func AnswerAcceptable(answer, question string) bool {
	lowered := strings.ToLower(answer)

	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lowered, phrase) {
			return false
		}
	}

	if len(strings.Fields(answer)) < minAnswerWords {
		return false
	}

	for _, term := range relevance.ExtractKeyTerms(question) {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// NeedsHumanHelp decides whether to escalate. Greetings, questions about the
// assistant, and very short inputs short-circuit to false so casual messages
// never page a human.
func NeedsHumanHelp(question string, context []store.DocumentChunk, answer string) bool {
	if isGreetingOrCasual(question) {
		return false
	}
	if len(strings.Fields(question)) < 3 {
		return false
	}

	contextRelevance := relevance.ContextRelevance(context, question)

	loweredAnswer := strings.ToLower(answer)
	hasUncertainty := false
	for _, phrase := range handoffUncertaintyPhrases {
		if strings.Contains(loweredAnswer, phrase) {
			hasUncertainty = true
			break
		}
	}

	loweredQuestion := strings.ToLower(question)
	isComplexRequest := false
	for _, indicator := range complexRequestIndicators {
		if strings.Contains(loweredQuestion, indicator) {
			isComplexRequest = true
			break
		}
	}

	return contextRelevance < humanAssistRelevanceThreshold && (hasUncertainty || isComplexRequest)
}

func isGreetingOrCasual(input string) bool {
	normalized := strings.TrimSpace(strings.ToLower(input))

	for _, greeting := range commonGreetings {
		if normalized == greeting ||
			strings.HasPrefix(normalized, greeting+" ") ||
			strings.Contains(normalized, greeting) {
			return true
		}
	}

	for _, pattern := range simpleQuestionPatterns {
		if strings.Contains(normalized, pattern) {
			return true
		}
	}

	// Very short inputs are treated as greetings
	return len(strings.Fields(normalized)) <= 2 && len(normalized) < 15
}
