package category

import (
	"regexp"
	"strings"
)

// Category is the coarse topic assigned to a question or document.
type Category string

const (
	Transport   Category = "Transport"
	Commodities Category = "Commodities"
	Chemicals   Category = "Chemicals"
	Services    Category = "Services"
	General     Category = "General"
)

// ordered holds the scoring order. Ties resolve to the earliest entry.
var ordered = []Category{Transport, Commodities, Chemicals, Services}

// categoryKeywords maps each category to the keywords that identify it.
var categoryKeywords = map[Category][]string{
	Transport: {
		"cargo", "freight", "logistics", "transport",
		"shipping", "rail", "truck", "air", "ocean",
		"multimodal", "intermodal", "oog",
	},
	Commodities: {
		"barley", "wheat", "lentils", "seeds", "meal",
		"oil", "peas", "chickpeas", "millet", "oats",
		"flour", "sunflower", "rapeseed", "flaxseed", "soybean",
	},
	Chemicals: {
		"ethylene", "polyethylene", "propylene", "chemical",
	},
	Services: {
		"services", "solutions", "operations", "management",
		"supply chain", "financial",
	},
}

// Identify returns the most relevant category for a question by counting
// keyword substring matches. Zero matches across all categories yields General.
func Identify(question string) Category {
	normalized := strings.ToLower(question)

	best := General
	bestScore := 0
	for _, cat := range ordered {
		score := 0
		for _, keyword := range categoryKeywords[cat] {
			if strings.Contains(normalized, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}

	return best
}

// IdentifyDocument classifies a document by its filename, falling back to
// whole-word keyword frequency in the content when the filename matches
// nothing. Used by the ingestion seeder.
func IdentifyDocument(filename, content string) Category {
	normalizedName := strings.ToLower(filename)

	for _, cat := range ordered {
		for _, keyword := range categoryKeywords[cat] {
			if strings.Contains(normalizedName, keyword) {
				return cat
			}
		}
	}

	if content != "" {
		normalizedContent := strings.ToLower(content)

		best := General
		bestScore := 0
		for _, cat := range ordered {
			score := 0
			for _, keyword := range categoryKeywords[cat] {
				re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
				score += len(re.FindAllStringIndex(normalizedContent, -1))
			}
			if score > bestScore {
				best = cat
				bestScore = score
			}
		}
		if bestScore > 0 {
			return best
		}
	}

	return General
}

// Keywords exposes the keyword table for a category. The seeder uses this to
// derive chunk tags.
func Keywords(cat Category) []string {
	return categoryKeywords[cat]
}

// All returns the scoring order of the concrete categories (General excluded).
func All() []Category {
	return ordered
}
