// internal/workers/chatbot/render-answer/renderer.go
package renderanswer

import (
	"fmt"
	"sort"
	"strings"

	"gymlink-api/internal/models"
	"gymlink-api/internal/vocabulary"
)

const (
	noMatchesAnswer        = "I couldn't find any businesses matching your criteria. Try asking about gyms, yoga studios, or specific locations like Sydney or Melbourne."
	noPricingAnswer        = "I couldn't find pricing information for your criteria. Try asking about specific types of businesses or locations."
	noRecommendationAnswer = "I couldn't find any businesses to recommend based on your criteria. Try being more specific about what you're looking for."
	noStatisticsAnswer     = "I don't have enough data to provide statistics for your criteria."
	generalPromptAnswer    = "I'm here to help you find fitness businesses! You can ask me about gyms, yoga studios, locations, prices, or specific services. What would you like to know?"
)

// Renderer builds the chatbot's answer sentence from the matched records.
type Renderer struct {
	budgetCeiling float64
	cities        []string
}

func NewRenderer(vocab *vocabulary.Vocabulary) *Renderer {
	return &Renderer{
		budgetCeiling: vocab.Price.BudgetCeiling,
		cities:        vocab.CityNames(),
	}
}

// Render picks a template by intent and result count. results is never modified.
// rawQuery is accepted for templates that echo the question; none currently do.
func (r *Renderer) Render(intent models.Intent, fs models.FilterSet, results []models.BusinessRecord, rawQuery string) string {
	switch intent {
	case models.IntentInformation:
		return r.information(results)
	case models.IntentPricing:
		return r.pricing(fs, results)
	case models.IntentLocation:
		return r.location(results)
	case models.IntentRecommendation:
		return r.recommendation(results)
	case models.IntentStatistics:
		return r.statistics(results)
	default:
		return r.general(results)
	}
}

func (r *Renderer) information(results []models.BusinessRecord) string {
	switch {
	case len(results) == 0:
		return noMatchesAnswer
	case len(results) == 1:
		b := results[0]
		return fmt.Sprintf("I found %s in %s. It's a %s with a %s vibe, priced at $%s/week. They offer: %s.",
			b.Name, b.Location, strings.ToLower(b.Category), strings.ToLower(b.Vibe),
			models.FormatNumber(b.Price), strings.Join(b.Services, ", "))
	case len(results) <= 3:
		entries := make([]string, len(results))
		for i, b := range results {
			entries[i] = fmt.Sprintf("%s (%s) - $%s/week", b.Name, b.Location, models.FormatNumber(b.Price))
		}
		return fmt.Sprintf("Here are the businesses I found: %s. Would you like more details about any specific one?",
			strings.Join(entries, ", "))
	default:
		names := make([]string, 3)
		for i := range names {
			names[i] = results[i].Name
		}
		return fmt.Sprintf("I found %d businesses matching your criteria. The top options include %s. Would you like me to narrow down the search with more specific criteria?",
			len(results), strings.Join(names, ", "))
	}
}

func (r *Renderer) pricing(fs models.FilterSet, results []models.BusinessRecord) string {
	if len(results) == 0 {
		return noPricingAnswer
	}

	minPrice, maxPrice, sum := results[0].Price, results[0].Price, 0.0
	for _, b := range results {
		minPrice = min(minPrice, b.Price)
		maxPrice = max(maxPrice, b.Price)
		sum += b.Price
	}

	if fs.PriceSentiment == models.PriceSentimentBudget {
		var (
			count    int
			cheapest *models.BusinessRecord
		)
		for i := range results {
			if results[i].Price > r.budgetCeiling {
				continue
			}
			count++
			if cheapest == nil || results[i].Price < cheapest.Price {
				cheapest = &results[i]
			}
		}

		answer := fmt.Sprintf("For budget-friendly options, I found %d businesses under $%s/week.",
			count, models.FormatNumber(r.budgetCeiling))
		if cheapest != nil {
			answer += fmt.Sprintf(" The cheapest is %s at $%s/week.", cheapest.Name, models.FormatNumber(cheapest.Price))
		}
		return answer
	}

	avg := models.RoundHalfUp(sum / float64(len(results)))
	return fmt.Sprintf("Based on the %d businesses I found, prices range from $%s to $%s per week, with an average of $%s/week.",
		len(results), models.FormatNumber(minPrice), models.FormatNumber(maxPrice), models.FormatNumber(avg))
}

func (r *Renderer) location(results []models.BusinessRecord) string {
	if len(results) == 0 {
		return fmt.Sprintf("I couldn't find any businesses in that location. Try asking about %s.", joinWithOr(r.cities))
	}

	locations := distinct(results, func(b models.BusinessRecord) string { return b.Location })
	return fmt.Sprintf("I found businesses in: %s. There are %d total businesses in these locations.",
		strings.Join(locations, ", "), len(results))
}

func (r *Renderer) recommendation(results []models.BusinessRecord) string {
	if len(results) == 0 {
		return noRecommendationAnswer
	}

	sorted := make([]models.BusinessRecord, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	top := sorted[0]
	return fmt.Sprintf("I recommend %s in %s! It's a %s with a %s/5 rating and %s vibe. Priced at $%s/week, they offer: %s.",
		top.Name, top.Location, strings.ToLower(top.Category), models.FormatNumber(top.Rating),
		strings.ToLower(top.Vibe), models.FormatNumber(top.Price), strings.Join(top.Services, ", "))
}

func (r *Renderer) statistics(results []models.BusinessRecord) string {
	if len(results) == 0 {
		return noStatisticsAnswer
	}

	categories := distinct(results, func(b models.BusinessRecord) string { return b.Category })
	locations := distinct(results, func(b models.BusinessRecord) string { return b.Location })

	var priceSum, ratingSum float64
	for _, b := range results {
		priceSum += b.Price
		ratingSum += b.Rating
	}
	n := float64(len(results))

	return fmt.Sprintf("Here's what I found: %d businesses across %d categories (%s) in %d locations. Average price: $%s/week, average rating: %s/5.",
		len(results), len(categories), strings.Join(categories, ", "), len(locations),
		models.FormatNumber(models.RoundHalfUp(priceSum/n)), models.FormatNumber(models.RoundTenth(ratingSum/n)))
}

func (r *Renderer) general(results []models.BusinessRecord) string {
	if len(results) == 0 {
		return generalPromptAnswer
	}
	return fmt.Sprintf(`I found %d businesses that might interest you. You can ask me more specific questions like "What's the cheapest option?" or "Tell me about gyms with saunas."`,
		len(results))
}

// distinct returns the values of key in first-seen order.
func distinct(records []models.BusinessRecord, key func(models.BusinessRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, b := range records {
		v := key(b)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func joinWithOr(items []string) string {
	if len(items) < 2 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}
