// internal/models/business.go
package models

// BusinessRecord is one fitness business in the catalog. Records are loaded once
// and never modified afterwards.
type BusinessRecord struct {
	ID          int      `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Category    string   `json:"category" db:"category"`
	Location    string   `json:"location" db:"location"`
	Price       float64  `json:"price" db:"price"` // per week
	Vibe        string   `json:"vibe" db:"vibe"`
	Rating      float64  `json:"rating" db:"rating"`
	Services    []string `json:"services" db:"services"`
	Description string   `json:"description" db:"description"`
	Image       string   `json:"image" db:"image"`
}

// PriceRange is the min/max weekly price across a set of records.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceStats extends PriceRange with the rounded mean.
type PriceStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// FilterOptions lists the distinct values available for faceted filtering.
type FilterOptions struct {
	Categories []string   `json:"categories"`
	Locations  []string   `json:"locations"`
	Vibes      []string   `json:"vibes"`
	Services   []string   `json:"services"`
	PriceRange PriceRange `json:"priceRange"`
}
