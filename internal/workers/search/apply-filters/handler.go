// internal/workers/search/apply-filters/handler.go
package applyfilters

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/camunda"
	"gymlink-api/internal/common/logger"
)

const (
	TaskType = "apply-search-filters"
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
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
	matched := Apply(input.FilterSet, h.catalog.All())
	total := len(matched)

	if h.config.MaxRecords > 0 && len(matched) > h.config.MaxRecords {
		matched = matched[:h.config.MaxRecords]
	}

	h.logger.Info("filters applied", map[string]interface{}{
		"catalogSize": h.catalog.Len(),
		"total":       total,
		"returned":    len(matched),
	})

	return &Output{Records: matched, Total: total}, nil
}
