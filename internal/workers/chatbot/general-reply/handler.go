// internal/workers/chatbot/general-reply/handler.go
package generalreply

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"gymlink-api/internal/common/camunda"
	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
)

const (
	TaskType = "answer-small-talk"
)

type Handler struct {
	config    *Config
	responder *Responder
	logger    logger.Logger
}

func NewHandler(config *Config, responder *Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		responder: responder,
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

	answer, matched := h.responder.TryGeneralReply(input.Question)

	h.logger.Debug("small talk checked", map[string]interface{}{
		"matched": matched,
	})

	return &Output{Matched: matched, Answer: answer}, nil
}
