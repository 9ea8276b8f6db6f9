package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryEmpty(t *testing.T) {
	c := NewCollector()

	summary := c.Summary()

	assert.Zero(t, summary.TotalInteractions)
	assert.Zero(t, summary.AverageRelevance)
	assert.Empty(t, summary.CategoryBreakdown)
}

func TestSummaryAggregates(t *testing.T) {
	c := NewCollector()

	c.Record(Interaction{SessionID: "s1", Category: "Commodities", ContextRelevance: 0.6, DurationMs: 100})
	c.Record(Interaction{SessionID: "s1", Category: "Transport", ContextRelevance: 0.2, NeedsHumanAssistance: true, DurationMs: 300})
	c.Record(Interaction{SessionID: "s2", Category: "Commodities", NeedsRefinement: true, ClarificationNeeded: true, DurationMs: 200})

	summary := c.Summary()

	assert.Equal(t, 3, summary.TotalInteractions)
	assert.Equal(t, 1, summary.Handoffs)
	assert.Equal(t, 1, summary.Refinements)
	assert.Equal(t, 1, summary.Clarifications)
	assert.Equal(t, 2, summary.UniqueSessionCount)
	assert.Equal(t, 2, summary.CategoryBreakdown["Commodities"])
	assert.Equal(t, 1, summary.CategoryBreakdown["Transport"])
	assert.InDelta(t, (0.6+0.2)/3, summary.AverageRelevance, 1e-9)
	assert.InDelta(t, 200.0, summary.AverageDurationMs, 1e-9)
}

func TestRecent(t *testing.T) {
	c := NewCollector()

	c.Record(Interaction{Question: "one"})
	c.Record(Interaction{Question: "two"})
	c.Record(Interaction{Question: "three"})

	recent := c.Recent(2)

	assert.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Question)
	assert.Equal(t, "three", recent[1].Question)
}
