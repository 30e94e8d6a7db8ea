// internal/workers/chatbot/classify-intent/classifier.go
package classifyintent

import (
	"strings"

	"gymlink-api/internal/models"
	"gymlink-api/internal/vocabulary"
)

// Classifier checks the intent rules in order; the first rule with a matching phrase
// decides. A question matching no rule is general.
type Classifier struct {
	rules []vocabulary.IntentRule
}

func NewClassifier(vocab *vocabulary.Vocabulary) *Classifier {
	return &Classifier{rules: vocab.Intents}
}

func (c *Classifier) Classify(question string) models.Intent {
	q := strings.ToLower(question)
	for _, rule := range c.rules {
		for _, phrase := range rule.Phrases {
			if strings.Contains(q, phrase) {
				return models.Intent(rule.Intent)
			}
		}
	}
	return models.IntentGeneral
}
