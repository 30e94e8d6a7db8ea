package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymlink-api/internal/common/config"
	"gymlink-api/internal/common/logger"
)

func TestLoadFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "businesses.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1, "name": "Iron Temple", "category": "Gym", "location": "Sydney", "price": 30,
		 "vibe": "Intense", "rating": 4.5, "services": ["Sauna"]},
		{"id": 2, "name": "Still Waters Yoga", "category": "Yoga", "location": "Melbourne", "price": 25,
		 "vibe": "Calm", "rating": 4.8, "services": []}
	]`), 0o600))

	t.Run("file source", func(t *testing.T) {
		cfg := &config.Config{Catalog: config.CatalogConfig{
			Source:      config.CatalogSourceFile,
			FilePath:    path,
			LoadTimeout: 1000,
		}}

		c := LoadFromConfig(context.Background(), cfg, logger.NewTestLogger(t))

		assert.Equal(t, 2, c.Len())
	})

	t.Run("unknown source degrades to empty", func(t *testing.T) {
		cfg := &config.Config{Catalog: config.CatalogConfig{Source: "mongodb", LoadTimeout: 1000}}

		c := LoadFromConfig(context.Background(), cfg, logger.NewTestLogger(t))

		assert.Equal(t, 0, c.Len())
	})
}

func TestNewProvider(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogSourceFile, FilePath: "data.json"}}

	provider, closeFn, err := NewProvider(cfg)

	require.NoError(t, err)
	assert.Equal(t, "file", provider.Name())
	assert.NoError(t, closeFn())
}
