package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/metrics"
	"gymlink-api/internal/common/observability"
	"gymlink-api/internal/models"
	"gymlink-api/internal/vocabulary"
	classifyintent "gymlink-api/internal/workers/chatbot/classify-intent"
	generalreply "gymlink-api/internal/workers/chatbot/general-reply"
	renderanswer "gymlink-api/internal/workers/chatbot/render-answer"
	applyfilters "gymlink-api/internal/workers/search/apply-filters"
	extractfilters "gymlink-api/internal/workers/search/extract-filters"
)

const maxExampleQuestions = 8

var canAnswer = []string{
	"Questions about fitness businesses",
	"Location-based queries",
	"Price comparisons",
	"Service availability",
	"Business recommendations",
	"General statistics",
	"Category-specific information",
	"Vibe and atmosphere queries",
}

// ChatAnswer is the chatbot's reply together with the records it was based on.
type ChatAnswer struct {
	AnswerText       string                  `json:"answerText"`
	MatchedRecords   []models.BusinessRecord `json:"matchedRecords"`
	AppliedFilterSet models.FilterSet        `json:"appliedFilterSet"`
	TotalCount       int                     `json:"totalCount"`
	Intent           models.Intent           `json:"intent,omitempty"`
}

// Capabilities describes what the chatbot can be asked about the loaded catalog.
type Capabilities struct {
	CanAnswer        []string      `json:"canAnswer"`
	ExampleQuestions []string      `json:"exampleQuestions"`
	DataSource       string        `json:"dataSource"`
	AvailableData    AvailableData `json:"availableData"`
}

type AvailableData struct {
	TotalBusinesses int               `json:"totalBusinesses"`
	Categories      []string          `json:"categories"`
	Locations       []string          `json:"locations"`
	PriceRange      models.PriceStats `json:"priceRange"`
	TotalServices   int               `json:"totalServices"`
	Vibes           []string          `json:"vibes"`
}

type ChatbotService struct {
	catalog    *catalog.Catalog
	responder  *generalreply.Responder
	extractor  *extractfilters.Extractor
	classifier *classifyintent.Classifier
	renderer   *renderanswer.Renderer
	cache      *ResponseCache
	obs        *observability.Observability
	logger     logger.Logger

	intN func(n int) int
}

func NewChatbotService(
	cat *catalog.Catalog,
	vocab *vocabulary.Vocabulary,
	cache *ResponseCache,
	obs *observability.Observability,
	log logger.Logger,
) *ChatbotService {
	return &ChatbotService{
		catalog:    cat,
		responder:  generalreply.NewResponder(vocab, cat.Len),
		extractor:  extractfilters.NewExtractor(vocab),
		classifier: classifyintent.NewClassifier(vocab),
		renderer:   renderanswer.NewRenderer(vocab),
		cache:      cache,
		obs:        obs,
		logger:     logger.ForComponent(log, "chatbot-service"),
		intN:       rand.IntN,
	}
}

// Ask answers a question. Small talk is answered without touching the catalog;
// everything else runs extract, classify, filter and render.
func (s *ChatbotService) Ask(ctx context.Context, question string) (*ChatAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.NewQueryRequiredError("question")
	}

	ctx, span := s.obs.StartSpan(ctx, "chatbot.ask", attribute.Int("question.length", len(question)))
	defer span.End()

	started := time.Now()
	metrics.SearchQueries.WithLabelValues(cacheKindChat).Inc()

	var cached ChatAnswer
	if s.cache.Get(ctx, cacheKindChat, question, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		s.obs.RecordQuery(ctx, cacheKindChat, time.Since(started), "cached")
		return &cached, nil
	}

	answer := s.answer(question)
	s.cache.Set(ctx, cacheKindChat, question, answer)

	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.String("chat.intent", string(answer.Intent)),
		attribute.Int("results.total", answer.TotalCount),
	)
	s.obs.RecordQuery(ctx, cacheKindChat, time.Since(started), "ok")

	s.logger.Info("chatbot question answered", map[string]interface{}{
		"intent":     string(answer.Intent),
		"total":      answer.TotalCount,
		"durationMs": time.Since(started).Milliseconds(),
	})

	return answer, nil
}

func (s *ChatbotService) answer(question string) *ChatAnswer {
	if reply, ok := s.responder.TryGeneralReply(question); ok {
		return &ChatAnswer{
			AnswerText:     reply,
			MatchedRecords: []models.BusinessRecord{},
		}
	}

	fs := s.extractor.Extract(question)
	intent := s.classifier.Classify(question)
	metrics.ChatIntents.WithLabelValues(string(intent)).Inc()

	matched := applyfilters.Apply(fs, s.catalog.All())

	return &ChatAnswer{
		AnswerText:       s.renderer.Render(intent, fs, matched, question),
		MatchedRecords:   matched,
		AppliedFilterSet: fs,
		TotalCount:       len(matched),
		Intent:           intent,
	}
}

// Capabilities samples example questions at random, so two calls rarely agree.
func (s *ChatbotService) Capabilities() Capabilities {
	opts := s.catalog.FilterOptions()

	return Capabilities{
		CanAnswer:        append([]string(nil), canAnswer...),
		ExampleQuestions: s.exampleQuestions(opts),
		DataSource:       fmt.Sprintf("Fitness businesses database with %d businesses across Australia", s.catalog.Len()),
		AvailableData: AvailableData{
			TotalBusinesses: s.catalog.Len(),
			Categories:      opts.Categories,
			Locations:       opts.Locations,
			PriceRange:      s.catalog.PriceStats(),
			TotalServices:   len(opts.Services),
			Vibes:           opts.Vibes,
		},
	}
}

func (s *ChatbotService) exampleQuestions(opts models.FilterOptions) []string {
	plural, singular := "gyms", "gym"
	if len(opts.Categories) > 0 {
		plural = strings.ToLower(opts.Categories[0])
		singular = plural
	}

	var questions []string
	if len(opts.Locations) > 0 {
		questions = append(questions, fmt.Sprintf("What %s are in %s?", plural, s.pick(opts.Locations)))
	}
	questions = append(questions,
		fmt.Sprintf("Show me cheap %s", plural),
		fmt.Sprintf("What's the average price for %s?", plural),
	)
	if len(opts.Services) > 0 {
		questions = append(questions, fmt.Sprintf("Which %s have %s?", plural, strings.ToLower(s.pick(opts.Services))))
	}
	if len(opts.Categories) > 1 {
		questions = append(questions, fmt.Sprintf("Tell me about %s classes", strings.ToLower(s.pick(opts.Categories))))
	}
	if len(opts.Services) > 0 {
		questions = append(questions, fmt.Sprintf("Recommend a %s with %s", singular, strings.ToLower(s.pick(opts.Services))))
	}
	if len(opts.Vibes) > 0 {
		questions = append(questions, fmt.Sprintf("Find %s with %s vibe", plural, strings.ToLower(s.pick(opts.Vibes))))
	}
	questions = append(questions,
		fmt.Sprintf("How many %s are there?", plural),
		"What's the price range for fitness businesses?",
	)

	return dedupe(questions, maxExampleQuestions)
}

func (s *ChatbotService) pick(values []string) string {
	return values[s.intN(len(values))]
}

func dedupe(values []string, limit int) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, limit)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
