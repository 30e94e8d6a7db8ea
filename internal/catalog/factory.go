package catalog

import (
	"context"
	"fmt"

	"gymlink-api/internal/common/config"
	"gymlink-api/internal/common/database"
	"gymlink-api/internal/common/logger"
)

// NewProvider builds the provider selected by catalog.source. The returned close
// function releases any connection the provider opened.
func NewProvider(cfg *config.Config) (Provider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return &FileProvider{Path: cfg.Catalog.FilePath}, noop, nil

	case config.CatalogSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, err
		}
		return &PostgresProvider{DB: pg.DB, Table: cfg.Catalog.Table}, pg.Close, nil

	case config.CatalogSourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, noop, err
		}
		return &ElasticsearchProvider{
			Client: es.Client,
			Index:  cfg.Catalog.Index,
			Size:   cfg.Catalog.MaxRecords,
		}, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// LoadFromConfig builds the configured provider, loads the catalog and releases the
// provider. Any failure yields an empty catalog.
func LoadFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) *Catalog {
	log = logger.ForComponent(log, "catalog")

	provider, closeFn, err := NewProvider(cfg)
	if err != nil {
		log.Error("catalog provider unavailable, serving an empty catalog", map[string]interface{}{
			"source": cfg.Catalog.Source,
			"error":  err,
		})
		return Empty()
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Warn("closing catalog provider failed", map[string]interface{}{"error": err})
		}
	}()

	return Load(ctx, provider, config.GetDuration(cfg.Catalog.LoadTimeout), log)
}
