// internal/workers/search/extract-filters/extractor.go
package extractfilters

import (
	"strings"

	"gymlink-api/internal/models"
	"gymlink-api/internal/vocabulary"
)

// Extractor turns free text into a FilterSet by case-insensitive substring matching
// against the vocabulary tables. It is a pure function of its input.
type Extractor struct {
	vocab *vocabulary.Vocabulary
}

func NewExtractor(vocab *vocabulary.Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract never fails. Category, location and vibe take the last alias that matches in
// table order; every matching service phrase is kept, overlaps included.
func (e *Extractor) Extract(query string) models.FilterSet {
	q := strings.ToLower(query)
	var fs models.FilterSet

	for _, c := range e.vocab.Categories {
		if strings.Contains(q, c.Alias) {
			fs.Category = models.StringPtr(c.Canonical)
		}
	}

	for _, c := range e.vocab.Cities {
		if strings.Contains(q, c.Alias) {
			fs.Location = models.StringPtr(c.Canonical)
		}
	}

	fs.PriceSentiment = e.sentiment(q)
	switch fs.PriceSentiment {
	case models.PriceSentimentBudget:
		fs.MaxPrice = models.Float64Ptr(e.vocab.Price.BudgetCeiling)
	case models.PriceSentimentPremium:
		fs.MinPrice = models.Float64Ptr(e.vocab.Price.PremiumFloor)
	}

	for _, group := range e.vocab.Services {
		for _, phrase := range group.Phrases {
			if strings.Contains(q, phrase) {
				fs.Services = append(fs.Services, phrase)
			}
		}
	}

	for _, vibe := range e.vocab.Vibes {
		if strings.Contains(q, vibe) {
			fs.Vibe = models.StringPtr(vibe)
		}
	}

	return fs
}

// Sentiment reports only the price sentiment of a query. Cheap phrases win over
// expensive ones.
func (e *Extractor) Sentiment(query string) models.PriceSentiment {
	return e.sentiment(strings.ToLower(query))
}

func (e *Extractor) sentiment(q string) models.PriceSentiment {
	switch {
	case containsAny(q, e.vocab.Price.CheapPhrases):
		return models.PriceSentimentBudget
	case containsAny(q, e.vocab.Price.ExpensivePhrases):
		return models.PriceSentimentPremium
	default:
		return models.PriceSentimentNone
	}
}

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}
