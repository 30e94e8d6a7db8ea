// internal/workers/chatbot/render-answer/models.go
package renderanswer

import "gymlink-api/internal/models"

// Input carries the matched records and their total before any cap. A zero Total
// means Records is the whole match set.
type Input struct {
	Intent    models.Intent           `json:"intent"`
	FilterSet models.FilterSet        `json:"filterSet"`
	Records   []models.BusinessRecord `json:"records"`
	Total     int                     `json:"total"`
	Question  string                  `json:"question"`
}

type Output struct {
	Answer string `json:"answer"`
}
