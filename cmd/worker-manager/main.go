// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/camunda"
	"gymlink-api/internal/common/config"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/observability"
	"gymlink-api/internal/vocabulary"

	ci "gymlink-api/internal/workers/chatbot/classify-intent"
	gr "gymlink-api/internal/workers/chatbot/general-reply"
	ra "gymlink-api/internal/workers/chatbot/render-answer"
	af "gymlink-api/internal/workers/search/apply-filters"
	ef "gymlink-api/internal/workers/search/extract-filters"
	"gymlink-api/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(loggerOptions(cfg.Logging))
	log.Info("Starting worker manager...", nil)

	if err := config.ValidateForWorkers(cfg); err != nil {
		log.Error("invalid worker configuration", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	obs := observability.New(cfg.Observability.ServiceName+"-workers", cfg.Observability.JaegerEndpoint, log)

	vocab, err := vocabulary.Load(cfg.Catalog.VocabularyPath)
	if err != nil {
		log.Error("vocabulary load failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	ctx := context.Background()
	cat := catalog.LoadFromConfig(ctx, cfg, log)

	// --- Init Zeebe Client with retry ---
	client, err := camunda.NewClient(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.Plaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig: &camunda.RetryConfig{
			MaxRetries: 10,
			BaseDelay:  2 * time.Second,
			MaxDelay:   30 * time.Second,
		},
	})
	if err != nil {
		log.Error("zeebe client failed after retries", map[string]interface{}{"error": err})
		os.Exit(1)
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{
		"gateway": cfg.Camunda.BrokerAddress,
	})

	reg, err := registry.LoadRegistry(cfg.Camunda.RegistryPath)
	if err == nil {
		err = reg.Validate()
	}
	if err != nil {
		log.Warn("activity registry unavailable, serving all built-in task types", map[string]interface{}{
			"path":  cfg.Camunda.RegistryPath,
			"error": err,
		})
		reg = nil
	}

	extractor := ef.NewExtractor(vocab)

	// --- Register workers ---
	var workers []*camunda.Worker
	register := func(taskType string, build func(timeout time.Duration) camunda.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			return
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if reg != nil {
			activity, ok := reg.FindByTaskType(taskType)
			if !ok {
				log.Warn("task type missing from activity registry, skipping", map[string]interface{}{"taskType": taskType})
				return
			}
			if _, configured := cfg.Workers[taskType]; !configured {
				if d, err := time.ParseDuration(activity.Timeout); err == nil {
					wcfg.Timeout = int(d.Milliseconds())
				}
			}
		}
		handler := build(config.GetDuration(wcfg.Timeout))
		workers = append(workers, camunda.NewWorker(client.Zeebe(), taskType, wcfg.MaxJobsActive, handler, log))
	}

	register(ef.TaskType, func(timeout time.Duration) camunda.JobHandler {
		return ef.NewHandler(&ef.Config{Timeout: timeout}, extractor, log)
	})
	if limit := cfg.Catalog.MaxRecords; limit > 0 && cat.Len() > limit {
		log.Warn("catalog exceeds the worker record cap, broad chatbot questions will fail with INVALID_RECORD_SET", map[string]interface{}{
			"records":    cat.Len(),
			"maxRecords": limit,
		})
	}
	register(af.TaskType, func(timeout time.Duration) camunda.JobHandler {
		return af.NewHandler(&af.Config{Timeout: timeout, MaxRecords: cfg.Catalog.MaxRecords}, cat, log)
	})
	register(ci.TaskType, func(timeout time.Duration) camunda.JobHandler {
		return ci.NewHandler(&ci.Config{Timeout: timeout}, ci.NewClassifier(vocab), log)
	})
	register(gr.TaskType, func(timeout time.Duration) camunda.JobHandler {
		return gr.NewHandler(&gr.Config{Timeout: timeout}, gr.NewResponder(vocab, cat.Len), log)
	})
	register(ra.TaskType, func(timeout time.Duration) camunda.JobHandler {
		return ra.NewHandler(&ra.Config{Timeout: timeout}, ra.NewRenderer(vocab), extractor, log)
	})

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := client.HealthCheck(r.Context()); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         status,
			"workers":        len(workers),
			"catalogRecords": cat.Len(),
			"time":           time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Observability.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"addr": metricsServer.Addr})
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown failed", map[string]interface{}{"error": err})
	}
	if err := client.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Warn("observability shutdown failed", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

func loggerOptions(cfg config.LoggingConfig) logger.Options {
	opts := logger.Options{Level: cfg.Level, Format: cfg.Format}
	if cfg.Output != "" && cfg.Output != "stdout" {
		opts.OutputPath = cfg.Output
	}
	return opts
}
