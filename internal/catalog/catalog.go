// Package catalog holds the immutable in-memory set of business records and the
// providers that load it.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"gymlink-api/internal/models"
)

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	records    []models.BusinessRecord
	byID       map[int]int
	droppedIDs []int
	digest     uint64
}

// New copies records into a catalog. When two records share an id the first one wins.
func New(records []models.BusinessRecord) *Catalog {
	c := &Catalog{
		records: make([]models.BusinessRecord, 0, len(records)),
		byID:    make(map[int]int, len(records)),
	}

	h := xxhash.New()
	for _, r := range records {
		if _, exists := c.byID[r.ID]; exists {
			c.droppedIDs = append(c.droppedIDs, r.ID)
			continue
		}
		services := make([]string, len(r.Services))
		copy(services, r.Services)
		r.Services = services

		c.byID[r.ID] = len(c.records)
		c.records = append(c.records, r)

		// BusinessRecord holds only strings, numbers and a string slice.
		encoded, _ := json.Marshal(r)
		_, _ = h.Write(encoded)
	}
	c.digest = h.Sum64()

	return c
}

// Empty returns a catalog without records.
func Empty() *Catalog {
	return New(nil)
}

// All returns the records in load order. The slice is a copy.
func (c *Catalog) All() []models.BusinessRecord {
	out := make([]models.BusinessRecord, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Catalog) Len() int {
	return len(c.records)
}

// ByID looks up a record by id.
func (c *Catalog) ByID(id int) (models.BusinessRecord, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.BusinessRecord{}, false
	}
	return c.records[idx], true
}

// Fingerprint identifies the record set: the record count and a hash over every kept
// record in load order.
func (c *Catalog) Fingerprint() string {
	return fmt.Sprintf("%d-%016x", len(c.records), c.digest)
}

// DroppedIDs lists ids of duplicate records that were ignored.
func (c *Catalog) DroppedIDs() []int {
	return c.droppedIDs
}
