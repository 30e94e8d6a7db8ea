// internal/workers/search/extract-filters/handler.go
package extractfilters

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
	TaskType = "extract-search-filters"
)

type Handler struct {
	config    *Config
	extractor *Extractor
	logger    logger.Logger
}

func NewHandler(config *Config, extractor *Extractor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
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
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewQueryRequiredError("query")
	}

	fs := h.extractor.Extract(query)

	h.logger.Info("filters extracted", map[string]interface{}{
		"empty":        fs.IsEmpty(),
		"serviceCount": len(fs.Services),
		"sentiment":    string(fs.PriceSentiment),
	})

	return &Output{FilterSet: fs, Query: query}, nil
}
