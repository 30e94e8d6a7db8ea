// internal/workers/search/apply-filters/handler_test.go
package applyfilters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/models"
)

func testRecords() []models.BusinessRecord {
	return []models.BusinessRecord{
		{ID: 1, Name: "Iron Temple", Category: "Gym", Location: "Sydney CBD", Price: 30, Vibe: "Intense", Rating: 4.6,
			Services: []string{"Personal Training", "Sauna"}, Description: "Heavy lifting floor"},
		{ID: 2, Name: "Still Waters Yoga", Category: "Yoga", Location: "Melbourne", Price: 25, Vibe: "Calm and relaxing", Rating: 4.8,
			Services: []string{"Meditation", "Hot Yoga"}, Description: "Slow flow classes"},
		{ID: 3, Name: "Harbour Boxing", Category: "Boxing", Location: "North Sydney", Price: 50, Vibe: "Community", Rating: 4.2,
			Services: []string{"Boxing Classes", "Personal Training"}, Description: "Pad work and sparring"},
		{ID: 4, Name: "Bayside Pilates", Category: "Pilates", Location: "Brisbane", Price: 45, Vibe: "Calm", Rating: 4.5,
			Services: []string{"Reformer Pilates"}, Description: "Reformer studio near the water"},
	}
}

func ids(records []models.BusinessRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApply(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name string
		fs   models.FilterSet
		want []int
	}{
		{name: "empty filter set keeps everything", fs: models.FilterSet{}, want: []int{1, 2, 3, 4}},
		{name: "category is case-insensitive equality", fs: models.FilterSet{Category: models.StringPtr("gym")}, want: []int{1}},
		{name: "location is a substring", fs: models.FilterSet{Location: models.StringPtr("Sydney")}, want: []int{1, 3}},
		{name: "max price is inclusive", fs: models.FilterSet{MaxPrice: models.Float64Ptr(30)}, want: []int{1, 2}},
		{name: "min price is inclusive", fs: models.FilterSet{MinPrice: models.Float64Ptr(45)}, want: []int{3, 4}},
		{name: "vibe is a substring", fs: models.FilterSet{Vibe: models.StringPtr("calm")}, want: []int{2, 4}},
		{
			name: "any requested service may match any tag",
			fs:   models.FilterSet{Services: []string{"sauna", "meditation"}},
			want: []int{1, 2},
		},
		{
			name: "service matches inside a longer tag",
			fs:   models.FilterSet{Services: []string{"pilates"}},
			want: []int{4},
		},
		{
			name: "fields are combined",
			fs: models.FilterSet{
				Location: models.StringPtr("sydney"),
				Services: []string{"personal training"},
				MinPrice: models.Float64Ptr(45),
			},
			want: []int{3},
		},
		{name: "no match", fs: models.FilterSet{Category: models.StringPtr("Swimming")}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(tt.fs, records)))
		})
	}
}

func TestApply_DoesNotAliasInput(t *testing.T) {
	records := testRecords()

	got := Apply(models.FilterSet{}, records)
	got[0] = models.BusinessRecord{ID: 99}

	assert.Equal(t, 1, records[0].ID)
}

func TestApplyList(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name string
		f    models.ListFilter
		want []int
	}{
		{name: "no filters", f: models.ListFilter{}, want: []int{1, 2, 3, 4}},
		{name: "vibe is exact", f: models.ListFilter{Vibe: "Calm"}, want: []int{4}},
		{name: "vibe case must match", f: models.ListFilter{Vibe: "calm"}, want: []int{}},
		{name: "single service substring", f: models.ListFilter{Service: "training"}, want: []int{1, 3}},
		{name: "search covers name", f: models.ListFilter{Search: "temple"}, want: []int{1}},
		{name: "search covers name and description", f: models.ListFilter{Search: "water"}, want: []int{2, 4}},
		{name: "search covers description", f: models.ListFilter{Search: "sparring"}, want: []int{3}},
		{name: "search covers location", f: models.ListFilter{Search: "melbourne"}, want: []int{2}},
		{
			name: "price window",
			f:    models.ListFilter{MinPrice: models.Float64Ptr(25), MaxPrice: models.Float64Ptr(45)},
			want: []int{1, 2, 4},
		},
		{name: "category and location", f: models.ListFilter{Category: "BOXING", Location: "north"}, want: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplyList(tt.f, records)))
		})
	}
}

func TestHandler_Execute(t *testing.T) {
	cat := catalog.New(testRecords())

	t.Run("returns matches and total", func(t *testing.T) {
		h := NewHandler(LoadConfig(), cat, logger.NewTestLogger(t))

		out, err := h.Execute(context.Background(), &Input{
			FilterSet: models.FilterSet{Services: []string{"personal training"}},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, out.Total)
		assert.Equal(t, []int{1, 3}, ids(out.Records))
	})

	t.Run("caps returned records but not the total", func(t *testing.T) {
		h := NewHandler(&Config{MaxRecords: 1}, cat, logger.NewTestLogger(t))

		out, err := h.Execute(context.Background(), &Input{})

		require.NoError(t, err)
		assert.Equal(t, 4, out.Total)
		assert.Equal(t, []int{1}, ids(out.Records))
	})

	t.Run("empty catalog", func(t *testing.T) {
		h := NewHandler(LoadConfig(), catalog.Empty(), logger.NewTestLogger(t))

		out, err := h.Execute(context.Background(), &Input{})

		require.NoError(t, err)
		assert.Equal(t, 0, out.Total)
		assert.Empty(t, out.Records)
	})
}
