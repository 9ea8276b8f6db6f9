package relevance

import (
	"regexp"
	"sort"
	"strings"

	"ai-support-chat-be/pkg/store"
)

// keyTermStopWords are interrogatives and filler words excluded when pulling
// key terms out of a question.
var keyTermStopWords = map[string]bool{
	"what": true, "where": true, "when": true, "which": true, "who": true,
	"how": true, "why": true, "about": true, "tell": true, "give": true,
	"does": true, "mean": true, "information": true,
}

// keywordStopWords is the smaller list used for context-relevance scoring.
var keywordStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "with": true, "about": true,
}

var nonWord = regexp.MustCompile(`\W+`)

// ExtractKeyTerms returns the question words longer than 3 characters with
// interrogative stopwords removed.
func ExtractKeyTerms(question string) []string {
	var terms []string
	for _, word := range nonWord.Split(strings.ToLower(question), -1) {
		if len(word) > 3 && !keyTermStopWords[word] {
			terms = append(terms, word)
		}
	}
	return terms
}

// QuestionKeywords returns the question words longer than 2 characters with
// common stopwords removed. Used for context-relevance scoring.
func QuestionKeywords(question string) []string {
	var words []string
	for _, word := range nonWord.Split(strings.ToLower(question), -1) {
		if len(word) > 2 && !keywordStopWords[word] {
			words = append(words, word)
		}
	}
	return words
}

// ContextRelevance measures lexical overlap between a question and its
// retrieved context. Per chunk it computes the fraction of question keywords
// present as substrings, then averages across chunks. Result is in [0,1];
// empty context scores 0.
func ContextRelevance(chunks []store.DocumentChunk, question string) float64 {
	if len(chunks) == 0 {
		return 0
	}

	keywords := QuestionKeywords(question)
	if len(keywords) == 0 {
		return 0
	}

	var total float64
	for _, chunk := range chunks {
		content := strings.ToLower(chunk.Content)
		matched := 0
		for _, word := range keywords {
			if strings.Contains(content, word) {
				matched++
			}
		}
		total += float64(matched) / float64(len(keywords))
	}

	return total / float64(len(chunks))
}

// Scorer assigns a lexical relevance score to a chunk for a question. Kept as
// an interface so an embedding-based scorer can replace the heuristic without
// touching retriever control flow.
type Scorer interface {
	Score(question string, chunk store.DocumentChunk) float64
}

// KeyTermScorer counts whole-word key-term occurrences in the chunk text.
type KeyTermScorer struct{}

func (KeyTermScorer) Score(question string, chunk store.DocumentChunk) float64 {
	return scoreTerms(ExtractKeyTerms(question), chunk)
}

func scoreTerms(terms []string, chunk store.DocumentChunk) float64 {
	content := strings.ToLower(chunk.Content)
	score := 0
	for _, term := range terms {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		score += len(re.FindAllStringIndex(content, -1))
	}
	return float64(score)
}

// Reorder stable-sorts chunks by descending key-term score. Chunks with equal
// scores keep their incoming order, which preserves earlier boosts.
func Reorder(chunks []store.DocumentChunk, question string, scorer Scorer) []store.DocumentChunk {
	if scorer == nil {
		scorer = KeyTermScorer{}
	}

	type scored struct {
		chunk store.DocumentChunk
		score float64
	}

	scoredChunks := make([]scored, len(chunks))
	for i, chunk := range chunks {
		scoredChunks[i] = scored{chunk: chunk, score: scorer.Score(question, chunk)}
	}

	sort.SliceStable(scoredChunks, func(i, j int) bool {
		return scoredChunks[i].score > scoredChunks[j].score
	})

	result := make([]store.DocumentChunk, len(chunks))
	for i, s := range scoredChunks {
		result[i] = s.chunk
	}
	return result
}
