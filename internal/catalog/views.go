package catalog

import (
	"gymlink-api/internal/models"
)

// FilterOptions lists distinct categories, locations, vibes and services in first-seen
// order together with the price range. An empty catalog yields empty lists and zeros.
func (c *Catalog) FilterOptions() models.FilterOptions {
	opts := models.FilterOptions{
		Categories: distinct(c.records, func(r models.BusinessRecord) []string { return []string{r.Category} }),
		Locations:  distinct(c.records, func(r models.BusinessRecord) []string { return []string{r.Location} }),
		Vibes:      distinct(c.records, func(r models.BusinessRecord) []string { return []string{r.Vibe} }),
		Services:   distinct(c.records, func(r models.BusinessRecord) []string { return r.Services }),
	}

	stats := c.PriceStats()
	opts.PriceRange = models.PriceRange{Min: stats.Min, Max: stats.Max}
	return opts
}

// PriceStats returns min, max and the half-up rounded mean price.
func (c *Catalog) PriceStats() models.PriceStats {
	return PriceStatsOf(c.records)
}

// PriceStatsOf computes price statistics over any record slice.
func PriceStatsOf(records []models.BusinessRecord) models.PriceStats {
	if len(records) == 0 {
		return models.PriceStats{}
	}

	stats := models.PriceStats{Min: records[0].Price, Max: records[0].Price}
	var sum float64
	for _, r := range records {
		if r.Price < stats.Min {
			stats.Min = r.Price
		}
		if r.Price > stats.Max {
			stats.Max = r.Price
		}
		sum += r.Price
	}
	stats.Average = models.RoundHalfUp(sum / float64(len(records)))
	return stats
}

func distinct(records []models.BusinessRecord, values func(models.BusinessRecord) []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		for _, v := range values(r) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
