// internal/workers/chatbot/render-answer/handler.go
package renderanswer

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"gymlink-api/internal/common/camunda"
	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	extractfilters "gymlink-api/internal/workers/search/extract-filters"
)

const (
	TaskType = "render-chat-answer"
)

type Handler struct {
	config    *Config
	renderer  *Renderer
	extractor *extractfilters.Extractor
	logger    logger.Logger
}

func NewHandler(config *Config, renderer *Renderer, extractor *extractfilters.Extractor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		renderer:  renderer,
		extractor: extractor,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, &input); err != nil {
		camunda.FailJob(ctx, client, job, err, h.logger)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		camunda.FailJob(ctx, client, job, err, h.logger)
		return
	}

	camunda.CompleteJob(ctx, client, job, output, started, h.logger)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !input.Intent.Valid() {
		return nil, errors.NewInvalidIntentError(string(input.Intent))
	}
	// Counts, averages and the cheapest match would describe only a prefix.
	if input.Total > len(input.Records) {
		return nil, errors.NewInvalidRecordSetError(len(input.Records), input.Total)
	}

	// The sentiment does not travel in process variables.
	fs := input.FilterSet
	fs.PriceSentiment = h.extractor.Sentiment(input.Question)

	answer := h.renderer.Render(input.Intent, fs, input.Records, input.Question)

	h.logger.Info("answer rendered", map[string]interface{}{
		"intent":  string(input.Intent),
		"records": len(input.Records),
	})

	return &Output{Answer: answer}, nil
}
