package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/metrics"
)

const (
	cacheKindSearch = "search"
	cacheKindChat   = "chat"
)

// ResponseCache is a cache-aside store for query results. A nil Redis client turns
// every operation into a miss. Redis failures are logged and never returned.
type ResponseCache struct {
	client  *redis.Client
	ttl     time.Duration
	prefix  string
	version string
	catalog string
	logger  logger.Logger
}

// NewResponseCache keys entries by prefix, kind and vocabulary version so a vocabulary
// change never serves answers computed with the old tables.
func NewResponseCache(client *redis.Client, ttl time.Duration, prefix, version string, log logger.Logger) *ResponseCache {
	return &ResponseCache{
		client:  client,
		ttl:     ttl,
		prefix:  prefix,
		version: version,
		logger:  logger.ForComponent(log, "response-cache"),
	}
}

// ForCatalog returns a copy whose keys also carry the catalog fingerprint, so answers
// computed over one record set are never served for another.
func (c *ResponseCache) ForCatalog(fingerprint string) *ResponseCache {
	scoped := *c
	scoped.catalog = fingerprint
	return &scoped
}

// DisabledCache returns a cache that always misses.
func DisabledCache() *ResponseCache {
	return &ResponseCache{logger: logger.NewNoOpLogger()}
}

func (c *ResponseCache) Enabled() bool {
	return c.client != nil
}

// Key builds `<prefix>:<kind>:<version>[:<catalog>]:<query>`. The query is lower-cased and
// trimmed only: inner whitespace is part of the substring match, so it stays in the key.
func (c *ResponseCache) Key(kind, query string) string {
	parts := []string{c.prefix, kind, c.version}
	if c.catalog != "" {
		parts = append(parts, c.catalog)
	}
	parts = append(parts, strings.ToLower(strings.TrimSpace(query)))
	return strings.Join(parts, ":")
}

// Get decodes a cached value into dst and reports whether it was a hit.
func (c *ResponseCache) Get(ctx context.Context, kind, query string, dst any) bool {
	if !c.Enabled() {
		return false
	}

	key := c.Key(kind, query)
	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		metrics.ResponseCache.WithLabelValues(kind, "miss").Inc()
		return false
	case err != nil:
		metrics.ResponseCache.WithLabelValues(kind, "error").Inc()
		c.logger.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err),
		})
		return false
	}

	if err := json.Unmarshal([]byte(val), dst); err != nil {
		metrics.ResponseCache.WithLabelValues(kind, "error").Inc()
		c.logger.Warn("cached value is not decodable", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return false
	}

	metrics.ResponseCache.WithLabelValues(kind, "hit").Inc()
	return true
}

// Set stores value under the query key with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, kind, query string, value any) {
	if !c.Enabled() {
		return
	}

	key := c.Key(kind, query)
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache value not encodable", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		metrics.ResponseCache.WithLabelValues(kind, "error").Inc()
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err),
		})
	}
}

// Ping checks the Redis connection. A disabled cache always succeeds.
func (c *ResponseCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}
