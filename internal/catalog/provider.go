package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/metrics"
	"gymlink-api/internal/models"
)

//go:embed businesses.schema.json
var recordSchema []byte

// Provider loads the full record set from a backing store.
type Provider interface {
	Name() string
	Load(ctx context.Context) ([]models.BusinessRecord, error)
}

// Load reads the catalog once. A provider failure is logged and yields an empty catalog,
// so callers see "no results" instead of an outage.
func Load(ctx context.Context, provider Provider, timeout time.Duration, log logger.Logger) *Catalog {
	log = log.WithFields(map[string]interface{}{"source": provider.Name()})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	records, err := provider.Load(ctx)
	if err != nil {
		log.Error("catalog load failed, serving an empty catalog", map[string]interface{}{
			"error": errors.NewCatalogUnavailableError(provider.Name(), err).Details,
		})
		metrics.CatalogRecords.Set(0)
		return Empty()
	}

	c := New(records)
	for _, id := range c.DroppedIDs() {
		log.Warn("duplicate business id ignored", map[string]interface{}{"id": id})
	}

	metrics.CatalogRecords.Set(float64(c.Len()))
	log.Info("catalog loaded", map[string]interface{}{
		"records":    c.Len(),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return c
}

// FileProvider reads a JSON array of records and validates it against the record schema.
type FileProvider struct {
	Path string
}

func (p *FileProvider) Name() string { return "file" }

func (p *FileProvider) Load(ctx context.Context) ([]models.BusinessRecord, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return DecodeRecords(data)
}

// DecodeRecords validates raw catalog JSON and decodes it.
func DecodeRecords(data []byte) ([]models.BusinessRecord, error) {
	if err := ValidateRecords(data); err != nil {
		return nil, err
	}

	var records []models.BusinessRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}
