// internal/models/intent.go
package models

// Intent is the coarse purpose of a chatbot question.
type Intent string

const (
	IntentInformation    Intent = "information"
	IntentPricing        Intent = "pricing"
	IntentLocation       Intent = "location"
	IntentHours          Intent = "hours"
	IntentRecommendation Intent = "recommendation"
	IntentStatistics     Intent = "statistics"
	IntentGeneral        Intent = "general"
)

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentInformation, IntentPricing, IntentLocation, IntentHours,
		IntentRecommendation, IntentStatistics, IntentGeneral:
		return true
	}
	return false
}
