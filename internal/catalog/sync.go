package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/lib/pq"

	"gymlink-api/internal/models"
)

// Writer stores a record set in a backing store so a provider can read it back later.
type Writer interface {
	Name() string
	Store(ctx context.Context, records []models.BusinessRecord) (int, error)
}

// IndexBody holds the mappings for a catalog index.
var IndexBody = []byte(`{
  "mappings": {
    "properties": {
      "id": {"type": "integer"},
      "name": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "category": {"type": "keyword"},
      "location": {"type": "keyword"},
      "price": {"type": "double"},
      "vibe": {"type": "keyword"},
      "rating": {"type": "double"},
      "services": {"type": "keyword"},
      "description": {"type": "text"},
      "image": {"type": "keyword", "index": false}
    }
  }
}`)

// EnsureTable creates the catalog table when it does not exist yet.
func (p *PostgresProvider) EnsureTable(ctx context.Context) error {
	if !identifierPattern.MatchString(p.Table) {
		return fmt.Errorf("invalid table name %q", p.Table)
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	location TEXT NOT NULL,
	price NUMERIC(10, 2) NOT NULL,
	vibe TEXT NOT NULL DEFAULT '',
	rating NUMERIC(2, 1) NOT NULL,
	services TEXT[] NOT NULL DEFAULT '{}',
	description TEXT,
	image TEXT
)`, p.Table)

	if _, err := p.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", p.Table, err)
	}
	return nil
}

// Store upserts every record by id inside one transaction.
func (p *PostgresProvider) Store(ctx context.Context, records []models.BusinessRecord) (int, error) {
	if !identifierPattern.MatchString(p.Table) {
		return 0, fmt.Errorf("invalid table name %q", p.Table)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, name, category, location, price, vibe, rating, services, description, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	category = EXCLUDED.category,
	location = EXCLUDED.location,
	price = EXCLUDED.price,
	vibe = EXCLUDED.vibe,
	rating = EXCLUDED.rating,
	services = EXCLUDED.services,
	description = EXCLUDED.description,
	image = EXCLUDED.image`, p.Table)

	for _, r := range records {
		if _, err := tx.ExecContext(ctx, query,
			r.ID, r.Name, r.Category, r.Location, r.Price, r.Vibe, r.Rating,
			pq.Array(r.Services), r.Description, r.Image,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert business %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

// Store indexes every record under its id and refreshes the index once at the end.
func (p *ElasticsearchProvider) Store(ctx context.Context, records []models.BusinessRecord) (int, error) {
	for _, r := range records {
		body, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("encode business %d: %w", r.ID, err)
		}

		req := esapi.IndexRequest{
			Index:      p.Index,
			DocumentID: strconv.Itoa(r.ID),
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(ctx, p.Client)
		if err != nil {
			return 0, fmt.Errorf("index business %d: %w", r.ID, err)
		}
		failed := res.IsError()
		status := res.Status()
		res.Body.Close()
		if failed {
			return 0, fmt.Errorf("index business %d: %s", r.ID, status)
		}
	}

	res, err := p.Client.Indices.Refresh(
		p.Client.Indices.Refresh.WithContext(ctx),
		p.Client.Indices.Refresh.WithIndex(p.Index),
	)
	if err != nil {
		return 0, fmt.Errorf("refresh %s: %w", p.Index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("refresh %s: %s", p.Index, res.Status())
	}

	return len(records), nil
}
