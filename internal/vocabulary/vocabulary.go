// Package vocabulary holds the keyword tables that drive query interpretation.
//
// The tables are data, not code: the embedded vocabulary.yaml is the single source
// shared by the search and chatbot paths, and it is versioned together with the
// catalog's controlled vocabularies.
package vocabulary

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gymlink-api/internal/models"
)

//go:embed vocabulary.yaml
var embedded []byte

// CountPlaceholder is replaced with the catalog size in FAQ answers.
const CountPlaceholder = "{count}"

// Alias maps a lower-case phrase found in free text to its canonical catalog value.
type Alias struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"canonical"`
}

// PriceRules holds the sentiment phrase sets and the shared price constants.
type PriceRules struct {
	BudgetCeiling    float64  `yaml:"budgetCeiling"`
	PremiumFloor     float64  `yaml:"premiumFloor"`
	CheapPhrases     []string `yaml:"cheapPhrases"`
	ExpensivePhrases []string `yaml:"expensivePhrases"`
}

// ServiceGroup is a domain-labelled slice of the service phrase list.
type ServiceGroup struct {
	Domain  string   `yaml:"domain"`
	Phrases []string `yaml:"phrases"`
}

// IntentRule maps a set of trigger phrases to an intent name.
type IntentRule struct {
	Intent  string   `yaml:"intent"`
	Phrases []string `yaml:"phrases"`
}

// CannedReply is one category of small talk with a single fixed answer.
type CannedReply struct {
	Name    string   `yaml:"name"`
	Phrases []string `yaml:"phrases"`
	Answer  string   `yaml:"answer"`
}

// FAQEntry maps one trigger phrase to its answer.
type FAQEntry struct {
	Phrase string `yaml:"phrase"`
	Answer string `yaml:"answer"`
}

// Conversation groups the small-talk tables.
type Conversation struct {
	Replies []CannedReply `yaml:"replies"`
	FAQ     []FAQEntry    `yaml:"faq"`
}

// Vocabulary is the full set of keyword tables. It is read-only once constructed.
type Vocabulary struct {
	Version      string         `yaml:"version"`
	Price        PriceRules     `yaml:"price"`
	Categories   []Alias        `yaml:"categories"`
	Cities       []Alias        `yaml:"cities"`
	Services     []ServiceGroup `yaml:"services"`
	Vibes        []string       `yaml:"vibes"`
	Intents      []IntentRule   `yaml:"intents"`
	Conversation Conversation   `yaml:"conversation"`

	servicePhrases []string
}

// Default returns the embedded vocabulary. The embedded file is validated by tests,
// so a parse failure here is a build defect.
func Default() *Vocabulary {
	v, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("vocabulary: embedded tables are invalid: %v", err))
	}
	return v
}

// Load reads a vocabulary file from disk, falling back to the embedded tables when
// path is empty.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Parse(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates vocabulary YAML. All phrases are lower-cased.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}

	v.normalize()

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Vocabulary) normalize() {
	lowerAll := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			out = append(out, strings.ToLower(strings.TrimSpace(s)))
		}
		return out
	}

	v.Price.CheapPhrases = lowerAll(v.Price.CheapPhrases)
	v.Price.ExpensivePhrases = lowerAll(v.Price.ExpensivePhrases)
	for i := range v.Categories {
		v.Categories[i].Alias = strings.ToLower(strings.TrimSpace(v.Categories[i].Alias))
	}
	for i := range v.Cities {
		v.Cities[i].Alias = strings.ToLower(strings.TrimSpace(v.Cities[i].Alias))
	}
	for i := range v.Services {
		v.Services[i].Phrases = lowerAll(v.Services[i].Phrases)
	}
	v.Vibes = lowerAll(v.Vibes)
	for i := range v.Intents {
		v.Intents[i].Phrases = lowerAll(v.Intents[i].Phrases)
	}
	for i := range v.Conversation.Replies {
		v.Conversation.Replies[i].Phrases = lowerAll(v.Conversation.Replies[i].Phrases)
	}
	for i := range v.Conversation.FAQ {
		v.Conversation.FAQ[i].Phrase = strings.ToLower(strings.TrimSpace(v.Conversation.FAQ[i].Phrase))
	}

	v.servicePhrases = nil
	for _, group := range v.Services {
		v.servicePhrases = append(v.servicePhrases, group.Phrases...)
	}
}

// Validate checks the structural rules the matchers depend on.
func (v *Vocabulary) Validate() error {
	if v.Version == "" {
		return fmt.Errorf("vocabulary: version is required")
	}
	if v.Price.BudgetCeiling <= 0 || v.Price.PremiumFloor <= 0 {
		return fmt.Errorf("vocabulary: price constants must be positive")
	}
	if len(v.Price.CheapPhrases) == 0 || len(v.Price.ExpensivePhrases) == 0 {
		return fmt.Errorf("vocabulary: price sentiment phrases are required")
	}
	if err := checkAliases("categories", v.Categories); err != nil {
		return err
	}
	if err := checkAliases("cities", v.Cities); err != nil {
		return err
	}
	if err := checkDistinct("services", v.servicePhrases); err != nil {
		return err
	}
	if err := checkDistinct("vibes", v.Vibes); err != nil {
		return err
	}
	for _, rule := range v.Intents {
		if rule.Intent == "" || len(rule.Phrases) == 0 {
			return fmt.Errorf("vocabulary: intent rule %q has no phrases", rule.Intent)
		}
		if !models.Intent(rule.Intent).Valid() {
			return fmt.Errorf("vocabulary: intent %q is not a known intent", rule.Intent)
		}
	}
	for _, reply := range v.Conversation.Replies {
		if reply.Answer == "" || len(reply.Phrases) == 0 {
			return fmt.Errorf("vocabulary: canned reply %q is incomplete", reply.Name)
		}
	}
	return nil
}

func checkAliases(table string, aliases []Alias) error {
	seen := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		if a.Alias == "" || a.Canonical == "" {
			return fmt.Errorf("vocabulary: %s has an empty alias or canonical value", table)
		}
		if seen[a.Alias] {
			return fmt.Errorf("vocabulary: %s alias %q is duplicated", table, a.Alias)
		}
		seen[a.Alias] = true
	}
	return nil
}

func checkDistinct(table string, phrases []string) error {
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		if p == "" {
			return fmt.Errorf("vocabulary: %s has an empty phrase", table)
		}
		if seen[p] {
			return fmt.Errorf("vocabulary: %s phrase %q is duplicated", table, p)
		}
		seen[p] = true
	}
	return nil
}

// ServicePhrases returns the flattened service phrase list in matching order.
func (v *Vocabulary) ServicePhrases() []string {
	out := make([]string, len(v.servicePhrases))
	copy(out, v.servicePhrases)
	return out
}

// CityNames returns the canonical city names in table order.
func (v *Vocabulary) CityNames() []string {
	out := make([]string, 0, len(v.Cities))
	for _, c := range v.Cities {
		out = append(out, c.Canonical)
	}
	return out
}
