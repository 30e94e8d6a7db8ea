// internal/workers/search/apply-filters/models.go
package applyfilters

import "gymlink-api/internal/models"

type Input struct {
	FilterSet models.FilterSet `json:"filterSet"`
}

type Output struct {
	Records []models.BusinessRecord `json:"records"`
	Total   int                     `json:"total"`
}
