package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "extract-search-filters", DisplayName: "Extract Search Filters", Category: "search", TaskType: "extract-search-filters", Timeout: "5s"},
			{ID: "classify-chat-intent", DisplayName: "Classify Chat Intent", Category: "chatbot", TaskType: "classify-chat-intent"},
		},
	}
}

func TestLoadRegistry_ShippedFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{
		"extract-search-filters",
		"apply-search-filters",
		"classify-chat-intent",
		"answer-small-talk",
		"render-chat-answer",
	} {
		_, ok := reg.FindByTaskType(taskType)
		assert.True(t, ok, taskType)
	}
}

func TestActivityRegistry_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")

	require.NoError(t, sampleRegistry().Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 2)
	assert.Equal(t, "5s", loaded.Activities[0].Timeout)
}

func TestActivityRegistry_Add(t *testing.T) {
	reg := sampleRegistry()

	require.NoError(t, reg.Add(Activity{ID: "render-chat-answer", DisplayName: "Render", Category: "chatbot", TaskType: "render-chat-answer"}))
	assert.Len(t, reg.Activities, 3)
	assert.NotEmpty(t, reg.LastUpdated)

	err := reg.Add(Activity{ID: "classify-chat-intent"})
	assert.ErrorContains(t, err, "already exists")
}

func TestActivityRegistry_Update(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		field   string
		value   string
		wantErr string
	}{
		{name: "status", id: "classify-chat-intent", field: FieldStatus, value: "verified"},
		{name: "retries", id: "classify-chat-intent", field: FieldRetries, value: "2"},
		{name: "bad retries", id: "classify-chat-intent", field: FieldRetries, value: "two", wantErr: "invalid retries"},
		{name: "bad timeout", id: "classify-chat-intent", field: FieldTimeout, value: "soon", wantErr: "invalid timeout"},
		{name: "unknown field", id: "classify-chat-intent", field: "owner", value: "x", wantErr: "unknown field"},
		{name: "unknown id", id: "missing", field: FieldStatus, value: "x", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry()
			err := reg.Update(tt.id, tt.field, tt.value)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	reg := sampleRegistry()
	require.NoError(t, reg.Update("classify-chat-intent", FieldRetries, "2"))
	a, ok := reg.FindByTaskType("classify-chat-intent")
	require.True(t, ok)
	assert.Equal(t, 2, a.Retries)
}

func TestActivityRegistry_Validate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.ErrorContains(t, (&ActivityRegistry{}).Validate(), "no activities")
	})

	t.Run("duplicate task type", func(t *testing.T) {
		reg := sampleRegistry()
		reg.Activities[1].TaskType = reg.Activities[0].TaskType
		assert.ErrorContains(t, reg.Validate(), "duplicate task type")
	})

	t.Run("missing category", func(t *testing.T) {
		reg := sampleRegistry()
		reg.Activities[0].Category = ""
		assert.ErrorContains(t, reg.Validate(), "Category")
	})

	t.Run("invalid timeout", func(t *testing.T) {
		reg := sampleRegistry()
		reg.Activities[0].Timeout = "five"
		assert.ErrorContains(t, reg.Validate(), "invalid timeout")
	})
}
