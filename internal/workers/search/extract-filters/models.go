// internal/workers/search/extract-filters/models.go
package extractfilters

import "gymlink-api/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	FilterSet models.FilterSet `json:"filterSet"`
	Query     string           `json:"query"`
}
