package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EmbeddedTablesAreValid(t *testing.T) {
	v := Default()

	assert.NotEmpty(t, v.Version)
	assert.Equal(t, 35.0, v.Price.BudgetCeiling)
	assert.Equal(t, 45.0, v.Price.PremiumFloor)
	assert.Equal(t, []string{"cheap", "affordable", "budget"}, v.Price.CheapPhrases)
	assert.Equal(t, []string{"expensive", "premium"}, v.Price.ExpensivePhrases)
	assert.Len(t, v.Categories, 18)
	assert.Len(t, v.Cities, 7)
	assert.Contains(t, v.Vibes, "tech-forward")
}

func TestDefault_TableOrderIsPreserved(t *testing.T) {
	v := Default()

	assert.Equal(t, Alias{Alias: "gym", Canonical: "Gym"}, v.Categories[0])
	assert.Equal(t, Alias{Alias: "rehabilitation", Canonical: "Rehabilitation"}, v.Categories[len(v.Categories)-1])
	assert.Equal(t, "gold coast", v.Cities[6].Alias)

	services := v.ServicePhrases()
	assert.Equal(t, "sauna", services[0])
	assert.Equal(t, "therapeutic exercise", services[len(services)-1])

	intents := make([]string, 0, len(v.Intents))
	for _, rule := range v.Intents {
		intents = append(intents, rule.Intent)
	}
	assert.Equal(t, []string{"information", "pricing", "location", "hours", "recommendation", "statistics"}, intents)
}

func TestDefault_ConversationTables(t *testing.T) {
	v := Default()

	names := make([]string, 0, len(v.Conversation.Replies))
	for _, r := range v.Conversation.Replies {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"greeting", "how-are-you", "thanks", "goodbye", "help", "about"}, names)
	assert.Equal(t, "what is gymlink", v.Conversation.FAQ[0].Phrase)
	assert.Contains(t, v.Conversation.FAQ[1].Answer, CountPlaceholder)
	assert.Contains(t, v.Conversation.Replies[4].Answer, "\n• Gyms")
}

func TestServicePhrases_ReturnsCopy(t *testing.T) {
	v := Default()

	first := v.ServicePhrases()
	first[0] = "mutated"

	assert.Equal(t, "sauna", v.ServicePhrases()[0])
}

func TestCityNames(t *testing.T) {
	v := Default()
	assert.Equal(t,
		[]string{"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide", "Canberra", "Gold Coast"},
		v.CityNames())
}

func TestParse_NormalizesCase(t *testing.T) {
	data := []byte(`
version: "t1"
price: { budgetCeiling: 30, premiumFloor: 50, cheapPhrases: [Cheap], expensivePhrases: [LUXE] }
categories: [ { alias: " Gym ", canonical: Gym } ]
cities: [ { alias: Perth, canonical: Perth } ]
services: [ { domain: x, phrases: [Sauna] } ]
vibes: [Calm]
`)
	v, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "gym", v.Categories[0].Alias)
	assert.Equal(t, "perth", v.Cities[0].Alias)
	assert.Equal(t, []string{"sauna"}, v.ServicePhrases())
	assert.Equal(t, []string{"calm"}, v.Vibes)
	assert.Equal(t, []string{"luxe"}, v.Price.ExpensivePhrases)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "missing version",
			data:    `price: { budgetCeiling: 1, premiumFloor: 2, cheapPhrases: [a], expensivePhrases: [b] }`,
			wantErr: "version is required",
		},
		{
			name:    "zero price constant",
			data:    `{ version: v, price: { budgetCeiling: 0, premiumFloor: 2, cheapPhrases: [a], expensivePhrases: [b] } }`,
			wantErr: "price constants",
		},
		{
			name: "duplicate category alias",
			data: `
version: v
price: { budgetCeiling: 1, premiumFloor: 2, cheapPhrases: [a], expensivePhrases: [b] }
categories: [ { alias: gym, canonical: Gym }, { alias: GYM, canonical: Gym } ]`,
			wantErr: `categories alias "gym" is duplicated`,
		},
		{
			name: "duplicate service across groups",
			data: `
version: v
price: { budgetCeiling: 1, premiumFloor: 2, cheapPhrases: [a], expensivePhrases: [b] }
services: [ { domain: a, phrases: [gymnastics] }, { domain: b, phrases: [gymnastics] } ]`,
			wantErr: `services phrase "gymnastics" is duplicated`,
		},
		{
			name: "unknown intent name",
			data: `
version: v
price: { budgetCeiling: 1, premiumFloor: 2, cheapPhrases: [a], expensivePhrases: [b] }
intents: [ { intent: pricng, phrases: [how much] } ]`,
			wantErr: `intent "pricng" is not a known intent`,
		},
		{
			name:    "malformed yaml",
			data:    "version: [",
			wantErr: "decode vocabulary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded tables", func(t *testing.T) {
		v, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default().Version, v.Version)
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocab.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
version: custom
price: { budgetCeiling: 20, premiumFloor: 60, cheapPhrases: [cheap], expensivePhrases: [premium] }
`), 0o600))

		v, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "custom", v.Version)
		assert.Equal(t, 20.0, v.Price.BudgetCeiling)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
