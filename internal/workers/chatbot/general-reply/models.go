// internal/workers/chatbot/general-reply/models.go
package generalreply

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Matched bool   `json:"matched"`
	Answer  string `json:"answer,omitempty"`
}
