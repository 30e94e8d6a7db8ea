// internal/models/filter_set.go
package models

// PriceSentiment records which sentiment phrase set produced a price bound.
type PriceSentiment string

const (
	PriceSentimentNone    PriceSentiment = ""
	PriceSentimentBudget  PriceSentiment = "budget"
	PriceSentimentPremium PriceSentiment = "premium"
)

// FilterSet is the structured query extracted from free text. Unset fields are nil.
type FilterSet struct {
	Category *string  `json:"category,omitempty"`
	Location *string  `json:"location,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Vibe     *string  `json:"vibe,omitempty"`
	Services []string `json:"services,omitempty"`

	PriceSentiment PriceSentiment `json:"-"`
}

// IsEmpty reports whether no field is set.
func (f FilterSet) IsEmpty() bool {
	return f.Category == nil &&
		f.Location == nil &&
		f.MinPrice == nil &&
		f.MaxPrice == nil &&
		f.Vibe == nil &&
		len(f.Services) == 0
}

// ListFilter carries the query parameters of the plain listing endpoint.
type ListFilter struct {
	Category string
	Location string
	MinPrice *float64
	MaxPrice *float64
	Vibe     string
	Service  string
	Search   string
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
