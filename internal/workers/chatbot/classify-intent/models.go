// internal/workers/chatbot/classify-intent/models.go
package classifyintent

import "gymlink-api/internal/models"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Intent models.Intent `json:"intent"`
}
