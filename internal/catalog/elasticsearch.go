package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"gymlink-api/internal/models"
)

// ElasticsearchProvider reads every document of an index, ordered by id.
type ElasticsearchProvider struct {
	Client *elasticsearch.Client
	Index  string
	Size   int
}

func (p *ElasticsearchProvider) Name() string { return "elasticsearch" }

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.BusinessRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *ElasticsearchProvider) Load(ctx context.Context) ([]models.BusinessRecord, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"id": map[string]interface{}{"order": "asc"}}},
		"size":  p.Size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := p.Client.Search(
		p.Client.Search.WithContext(ctx),
		p.Client.Search.WithIndex(p.Index),
		p.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", p.Index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", p.Index, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	records := make([]models.BusinessRecord, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if hit.Source.Services == nil {
			hit.Source.Services = []string{}
		}
		records = append(records, hit.Source)
	}
	return records, nil
}
