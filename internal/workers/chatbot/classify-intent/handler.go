// internal/workers/chatbot/classify-intent/handler.go
package classifyintent

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"gymlink-api/internal/common/camunda"
	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/metrics"
)

const (
	TaskType = "classify-chat-intent"
)

type Handler struct {
	config     *Config
	classifier *Classifier
	logger     logger.Logger
}

func NewHandler(config *Config, classifier *Classifier, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: classifier,
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
	if strings.TrimSpace(input.Question) == "" {
		return nil, errors.NewQueryRequiredError("question")
	}

	intent := h.classifier.Classify(input.Question)
	metrics.ChatIntents.WithLabelValues(string(intent)).Inc()

	h.logger.Debug("intent classified", map[string]interface{}{
		"intent": string(intent),
	})

	return &Output{Intent: intent}, nil
}
