package service

import (
	"testing"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/observability"
	"gymlink-api/internal/models"
	"gymlink-api/internal/vocabulary"
	extractfilters "gymlink-api/internal/workers/search/extract-filters"
)

func fixtureCatalog() *catalog.Catalog {
	return catalog.New([]models.BusinessRecord{
		{ID: 1, Name: "Iron Temple", Category: "Gym", Location: "Sydney", Price: 30, Vibe: "Intense", Rating: 4.6,
			Services: []string{"Personal Training", "Sauna"}},
		{ID: 2, Name: "Still Waters Yoga", Category: "Yoga", Location: "Melbourne", Price: 25, Vibe: "Calm", Rating: 4.8,
			Services: []string{"Meditation", "Hot Yoga"}},
		{ID: 3, Name: "Harbour Boxing", Category: "Boxing", Location: "Sydney", Price: 50, Vibe: "Community", Rating: 4.8,
			Services: []string{"Boxing Classes", "Personal Training"}},
		{ID: 4, Name: "Bayside Pilates", Category: "Pilates", Location: "Brisbane", Price: 45, Vibe: "Calm", Rating: 4.5,
			Services: []string{"Reformer Pilates"}},
		{ID: 5, Name: "Southside Gym", Category: "Gym", Location: "Melbourne", Price: 20, Vibe: "Friendly", Rating: 4.2,
			Services: []string{"Open Gym"}},
	})
}

func newTestSearchService(t *testing.T, cache *ResponseCache) *SearchService {
	return NewSearchService(
		fixtureCatalog(),
		extractfilters.NewExtractor(vocabulary.Default()),
		cache,
		observability.NewNoop(),
		logger.NewTestLogger(t),
	)
}

func newTestChatbotService(t *testing.T, cat *catalog.Catalog, cache *ResponseCache) *ChatbotService {
	return NewChatbotService(cat, vocabulary.Default(), cache, observability.NewNoop(), logger.NewTestLogger(t))
}

func recordIDs(records []models.BusinessRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
