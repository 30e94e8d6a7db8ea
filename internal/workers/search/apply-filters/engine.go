// internal/workers/search/apply-filters/engine.go
package applyfilters

import (
	"strings"

	"gymlink-api/internal/models"
)

// Apply keeps the records matching every set field of fs, in their original order.
// An empty FilterSet returns a copy of records.
func Apply(fs models.FilterSet, records []models.BusinessRecord) []models.BusinessRecord {
	out := make([]models.BusinessRecord, 0, len(records))
	for _, r := range records {
		if matches(fs, r) {
			out = append(out, r)
		}
	}
	return out
}

func matches(fs models.FilterSet, r models.BusinessRecord) bool {
	if fs.Category != nil && !strings.EqualFold(r.Category, *fs.Category) {
		return false
	}
	if fs.Location != nil && !containsFold(r.Location, *fs.Location) {
		return false
	}
	if fs.MinPrice != nil && r.Price < *fs.MinPrice {
		return false
	}
	if fs.MaxPrice != nil && r.Price > *fs.MaxPrice {
		return false
	}
	if fs.Vibe != nil && !containsFold(r.Vibe, *fs.Vibe) {
		return false
	}
	if len(fs.Services) > 0 && !anyServiceMatches(fs.Services, r.Services) {
		return false
	}
	return true
}

// anyServiceMatches is true when some requested service is a substring of some tag.
func anyServiceMatches(requested, tags []string) bool {
	for _, want := range requested {
		for _, tag := range tags {
			if containsFold(tag, want) {
				return true
			}
		}
	}
	return false
}

// ApplyList implements the plain listing filters. Unlike Apply, vibe is an exact match
// and a single service and a free-text search term are supported.
func ApplyList(f models.ListFilter, records []models.BusinessRecord) []models.BusinessRecord {
	out := make([]models.BusinessRecord, 0, len(records))
	for _, r := range records {
		if matchesList(f, r) {
			out = append(out, r)
		}
	}
	return out
}

func matchesList(f models.ListFilter, r models.BusinessRecord) bool {
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	if f.Location != "" && !containsFold(r.Location, f.Location) {
		return false
	}
	if f.MinPrice != nil && r.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && r.Price > *f.MaxPrice {
		return false
	}
	if f.Vibe != "" && r.Vibe != f.Vibe {
		return false
	}
	if f.Service != "" && !anyServiceMatches([]string{f.Service}, r.Services) {
		return false
	}
	if f.Search != "" &&
		!containsFold(r.Name, f.Search) &&
		!containsFold(r.Category, f.Search) &&
		!containsFold(r.Location, f.Search) &&
		!containsFold(r.Description, f.Search) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
