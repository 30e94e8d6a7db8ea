// cmd/tools/catalog-sync/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/config"
	"gymlink-api/internal/common/database"
	"gymlink-api/internal/common/logger"
)

func main() {
	filePath := flag.String("file", "data/fitness-businesses.json", "Path to the catalog JSON file")
	toPostgres := flag.Bool("postgres", false, "Upsert records into PostgreSQL")
	toElasticsearch := flag.Bool("elasticsearch", false, "Index records into Elasticsearch")
	configPath := flag.String("config", "", "Optional config file (defaults to configs/config.yaml)")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall sync timeout")
	flag.Usage = help
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewStructured(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	records, err := (&catalog.FileProvider{Path: *filePath}).Load(context.Background())
	if err != nil {
		fmt.Printf("Catalog file is invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catalog file %s is valid. Found %d records.\n", *filePath, len(records))

	if !*toPostgres && !*toElasticsearch {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var writers []catalog.Writer
	if *toPostgres {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			fmt.Printf("Error connecting to postgres: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.Ping(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		provider := &catalog.PostgresProvider{DB: pg.DB, Table: cfg.Catalog.Table}
		if err := provider.EnsureTable(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		writers = append(writers, provider)
	}
	if *toElasticsearch {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			fmt.Printf("Error connecting to elasticsearch: %v\n", err)
			os.Exit(1)
		}
		if err := es.EnsureIndex(ctx, cfg.Catalog.Index, catalog.IndexBody); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		writers = append(writers, &catalog.ElasticsearchProvider{Client: es.Client, Index: cfg.Catalog.Index})
	}

	failed := false
	for _, w := range writers {
		start := time.Now()
		n, err := w.Store(ctx, records)
		if err != nil {
			log.Error("catalog sync failed", map[string]interface{}{"target": w.Name(), "error": err})
			failed = true
			continue
		}
		log.Info("catalog synced", map[string]interface{}{
			"target":     w.Name(),
			"records":    n,
			"durationMs": time.Since(start).Milliseconds(),
		})
	}
	if failed {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func help() {
	fmt.Println(`
Usage: catalog-sync [flags]

Validates the catalog JSON file against the record schema, then optionally
copies every record into PostgreSQL and/or Elasticsearch.

Flags:
  -file           Catalog JSON file (default data/fitness-businesses.json)
  -postgres       Upsert records into the configured catalog table
  -elasticsearch  Index records into the configured catalog index
  -config         Config file to read connection settings from
  -timeout        Overall sync timeout (default 60s)

Examples:
  catalog-sync -file data/fitness-businesses.json
  catalog-sync -postgres -elasticsearch
  catalog-sync -config configs/config.production.yaml -postgres`)
}
