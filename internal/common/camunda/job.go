// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/metrics"
)

// DecodeVariables unmarshals the job's variables into dst.
func DecodeVariables(job entities.Job, dst interface{}) error {
	if err := json.Unmarshal([]byte(job.Variables), dst); err != nil {
		return apperrors.NewInvalidRequestBodyError("parse job variables: " + err.Error())
	}
	return nil
}

// CompleteJob sends the output as the job's result variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, started time.Time, log logger.Logger) {
	metrics.WorkerJobDuration.WithLabelValues(job.Type).Observe(time.Since(started).Seconds())

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		FailJob(ctx, client, job, apperrors.NewInternalError(err), log)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
	log.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": time.Since(started).Milliseconds(),
	})
}

// FailJob reports err to the broker: retryable codes fail the job, the rest throw a BPMN error.
func FailJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, log logger.Logger) {
	stdErr := apperrors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(job.Type, string(stdErr.Code)).Inc()
	apperrors.NewErrorHandler(log).HandleJobError(ctx, client, job, stdErr)
}
