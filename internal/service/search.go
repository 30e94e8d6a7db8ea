// Package service composes the extraction, filtering and rendering stages into the
// operations exposed over HTTP.
package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/metrics"
	"gymlink-api/internal/common/observability"
	"gymlink-api/internal/models"
	applyfilters "gymlink-api/internal/workers/search/apply-filters"
	extractfilters "gymlink-api/internal/workers/search/extract-filters"
)

// SearchResult is the outcome of a natural-language search.
type SearchResult struct {
	MatchedRecords   []models.BusinessRecord `json:"matchedRecords"`
	TotalCount       int                     `json:"totalCount"`
	AppliedFilterSet models.FilterSet        `json:"appliedFilterSet"`
	OriginalQuery    string                  `json:"originalQuery"`
}

type SearchService struct {
	catalog   *catalog.Catalog
	extractor *extractfilters.Extractor
	cache     *ResponseCache
	obs       *observability.Observability
	logger    logger.Logger
}

func NewSearchService(
	cat *catalog.Catalog,
	extractor *extractfilters.Extractor,
	cache *ResponseCache,
	obs *observability.Observability,
	log logger.Logger,
) *SearchService {
	return &SearchService{
		catalog:   cat,
		extractor: extractor,
		cache:     cache,
		obs:       obs,
		logger:    logger.ForComponent(log, "search-service"),
	}
}

// NaturalLanguage extracts a FilterSet from query and applies it to the catalog.
func (s *SearchService) NaturalLanguage(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewQueryRequiredError("query")
	}

	ctx, span := s.obs.StartSpan(ctx, "search.natural_language", attribute.Int("query.length", len(query)))
	defer span.End()

	started := time.Now()
	metrics.SearchQueries.WithLabelValues(cacheKindSearch).Inc()

	var cached SearchResult
	if s.cache.Get(ctx, cacheKindSearch, query, &cached) {
		cached.OriginalQuery = query
		span.SetAttributes(attribute.Bool("cache.hit", true))
		s.obs.RecordQuery(ctx, cacheKindSearch, time.Since(started), "cached")
		return &cached, nil
	}

	fs := s.extractor.Extract(query)
	matched := applyfilters.Apply(fs, s.catalog.All())

	result := &SearchResult{
		MatchedRecords:   matched,
		TotalCount:       len(matched),
		AppliedFilterSet: fs,
		OriginalQuery:    query,
	}
	s.cache.Set(ctx, cacheKindSearch, query, result)

	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.Int("results.total", result.TotalCount),
	)
	s.obs.RecordQuery(ctx, cacheKindSearch, time.Since(started), "ok")

	s.logger.Info("natural language search", map[string]interface{}{
		"total":        result.TotalCount,
		"emptyFilters": fs.IsEmpty(),
		"durationMs":   time.Since(started).Milliseconds(),
	})

	return result, nil
}
