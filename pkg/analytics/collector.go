package analytics

import (
	"sync"
	"time"
)

// Interaction is one recorded chat exchange.
type Interaction struct {
	SessionID            string    `json:"sessionId"`
	Question             string    `json:"question"`
	Category             string    `json:"category"`
	ContextRelevance     float64   `json:"contextRelevance"`
	ClarificationNeeded  bool      `json:"clarificationNeeded"`
	NeedsRefinement      bool      `json:"needsRefinement"`
	NeedsHumanAssistance bool      `json:"needsHumanAssistance"`
	DurationMs           int64     `json:"durationMs"`
	Timestamp            time.Time `json:"timestamp"`
}

// Summary aggregates everything recorded so far.
type Summary struct {
	TotalInteractions  int            `json:"totalInteractions"`
	Handoffs           int            `json:"handoffs"`
	Refinements        int            `json:"refinements"`
	Clarifications     int            `json:"clarifications"`
	AverageRelevance   float64        `json:"averageRelevance"`
	AverageDurationMs  float64        `json:"averageDurationMs"`
	CategoryBreakdown  map[string]int `json:"categoryBreakdown"`
	UniqueSessionCount int            `json:"uniqueSessionCount"`
}

// Collector accumulates interaction records in memory. It is safe for
// concurrent use.
type Collector struct {
	mu           sync.RWMutex
	interactions []Interaction
	sessions     map[string]struct{}
}

func NewCollector() *Collector {
	return &Collector{
		sessions: make(map[string]struct{}),
	}
}

func (c *Collector) Record(interaction Interaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interactions = append(c.interactions, interaction)
	if interaction.SessionID != "" {
		c.sessions[interaction.SessionID] = struct{}{}
	}
}

func (c *Collector) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary := Summary{
		TotalInteractions:  len(c.interactions),
		CategoryBreakdown:  make(map[string]int),
		UniqueSessionCount: len(c.sessions),
	}

	if len(c.interactions) == 0 {
		return summary
	}

	var relevanceSum float64
	var durationSum int64
	for _, it := range c.interactions {
		if it.NeedsHumanAssistance {
			summary.Handoffs++
		}
		if it.NeedsRefinement {
			summary.Refinements++
		}
		if it.ClarificationNeeded {
			summary.Clarifications++
		}
		if it.Category != "" {
			summary.CategoryBreakdown[it.Category]++
		}
		relevanceSum += it.ContextRelevance
		durationSum += it.DurationMs
	}

	summary.AverageRelevance = relevanceSum / float64(len(c.interactions))
	summary.AverageDurationMs = float64(durationSum) / float64(len(c.interactions))
	return summary
}

// Recent returns up to limit most recent interactions, newest last.
func (c *Collector) Recent(limit int) []Interaction {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if limit <= 0 || limit > len(c.interactions) {
		limit = len(c.interactions)
	}
	out := make([]Interaction, limit)
	copy(out, c.interactions[len(c.interactions)-limit:])
	return out
}
