// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymlink-api/internal/api"
	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/config"
	"gymlink-api/internal/common/database"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/observability"
	"gymlink-api/internal/service"
	"gymlink-api/internal/vocabulary"
	extractfilters "gymlink-api/internal/workers/search/extract-filters"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(loggerOptions(cfg.Logging))
	log.Info("starting GymLink API", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"catalog":     cfg.Catalog.Source,
	})

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint, log)

	vocab, err := vocabulary.Load(cfg.Catalog.VocabularyPath)
	if err != nil {
		log.Error("vocabulary load failed", map[string]interface{}{"error": err})
		os.Exit(1)
	}

	ctx := context.Background()
	cat := catalog.LoadFromConfig(ctx, cfg, log)

	cache := service.DisabledCache()
	if cfg.CacheActive() {
		redis := database.NewRedis(cfg.Database.Redis)
		defer redis.Close()

		err := retryWithBackoff(func() error { return redis.Ping(ctx) }, 5, time.Second, log, "Redis connection")
		if err != nil {
			log.Warn("redis unreachable, cache errors will be logged per request", map[string]interface{}{"error": err})
		}
		cache = service.NewResponseCache(redis.Client, cfg.Cache.CacheTTL(), cfg.Cache.KeyPrefix, vocab.Version, log).
			ForCatalog(cat.Fingerprint())
		log.Info("response cache enabled", map[string]interface{}{"catalog": cat.Fingerprint()})
	}

	router := api.NewRouter(api.Dependencies{
		Directory:      service.NewDirectoryService(cat),
		Search:         service.NewSearchService(cat, extractfilters.NewExtractor(vocab), cache, obs, log),
		Chatbot:        service.NewChatbotService(cat, vocab, cache, obs, log),
		Cache:          cache,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})
	srv := api.NewServer(cfg.Server, router)

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", map[string]interface{}{"error": err})
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Warn("observability shutdown failed", map[string]interface{}{"error": err})
	}

	log.Info("GymLink API stopped gracefully", nil)
}

func loggerOptions(cfg config.LoggingConfig) logger.Options {
	opts := logger.Options{Level: cfg.Level, Format: cfg.Format}
	if cfg.Output != "" && cfg.Output != "stdout" {
		opts.OutputPath = cfg.Output
	}
	return opts
}
