package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 36.0, RoundHalfUp(35.5))
	assert.Equal(t, 35.0, RoundHalfUp(35.49))
	assert.Equal(t, 0.0, RoundHalfUp(0))
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 4.7, RoundTenth(4.66))
	assert.Equal(t, 4.3, RoundTenth(4.25))
	assert.Equal(t, 4.0, RoundTenth(4.0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "35", FormatNumber(35))
	assert.Equal(t, "35.5", FormatNumber(35.5))
	assert.Equal(t, "4.5", FormatNumber(4.5))
}

func TestFilterSet_IsEmpty(t *testing.T) {
	assert.True(t, FilterSet{}.IsEmpty())
	assert.True(t, FilterSet{PriceSentiment: PriceSentimentBudget}.IsEmpty())
	assert.False(t, FilterSet{Services: []string{"sauna"}}.IsEmpty())
	assert.False(t, FilterSet{MaxPrice: Float64Ptr(35)}.IsEmpty())
}

func TestIntent_Valid(t *testing.T) {
	assert.True(t, IntentHours.Valid())
	assert.False(t, Intent("smalltalk").Valid())
}
