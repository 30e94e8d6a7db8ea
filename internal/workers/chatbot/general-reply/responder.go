// internal/workers/chatbot/general-reply/responder.go
package generalreply

import (
	"strconv"
	"strings"

	"gymlink-api/internal/vocabulary"
)

// Responder answers small talk and FAQ questions before any catalog lookup.
type Responder struct {
	conversation vocabulary.Conversation
	catalogSize  func() int
}

// NewResponder reads the catalog size through catalogSize each time an FAQ answer
// needs it.
func NewResponder(vocab *vocabulary.Vocabulary, catalogSize func() int) *Responder {
	return &Responder{
		conversation: vocab.Conversation,
		catalogSize:  catalogSize,
	}
}

// TryGeneralReply checks the canned reply groups in order and then the FAQ table.
// Matching is a lower-cased substring test, so short triggers such as "hi" also fire
// inside longer words.
func (r *Responder) TryGeneralReply(question string) (string, bool) {
	q := strings.ToLower(question)

	for _, reply := range r.conversation.Replies {
		for _, phrase := range reply.Phrases {
			if strings.Contains(q, phrase) {
				return reply.Answer, true
			}
		}
	}

	for _, entry := range r.conversation.FAQ {
		if strings.Contains(q, entry.Phrase) {
			return r.interpolate(entry.Answer), true
		}
	}

	return "", false
}

func (r *Responder) interpolate(answer string) string {
	if !strings.Contains(answer, vocabulary.CountPlaceholder) {
		return answer
	}
	return strings.ReplaceAll(answer, vocabulary.CountPlaceholder, strconv.Itoa(r.catalogSize()))
}
