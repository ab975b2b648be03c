package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func areaDataset() *Dataset {
	return NewDataset(
		[]string{"Final Location", "Year", "Weighted Average Rate"},
		[][]any{
			{"Wakad", int64(2022), 5000.0},
			{"Baner", int64(2022), 7000.0},
			{"Wakad", int64(2023), 6000.0},
			{nil, int64(2023), 100.0},
			{"Aundh", int64(2023), 8000.0},
			{int64(42), int64(2023), 1.0},
		},
	)
}

func TestDetectAreas(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ds         *Dataset
		wantColumn string
		wantAreas  []string
	}{
		{
			name:       "single area case-insensitive",
			query:      "How is WAKAD doing?",
			ds:         areaDataset(),
			wantColumn: "Final Location",
			wantAreas:  []string{"Wakad"},
		},
		{
			name:       "multiple areas in dataset order",
			query:      "compare aundh with baner and wakad",
			ds:         areaDataset(),
			wantColumn: "Final Location",
			wantAreas:  []string{"Wakad", "Baner", "Aundh"},
		},
		{
			name:       "no match",
			query:      "kothrud",
			ds:         areaDataset(),
			wantColumn: "Final Location",
			wantAreas:  nil,
		},
		{
			name:       "empty query",
			query:      "",
			ds:         areaDataset(),
			wantColumn: "Final Location",
			wantAreas:  nil,
		},
		{
			name:       "numeric values are never candidates",
			query:      "area 42",
			ds:         areaDataset(),
			wantColumn: "Final Location",
			wantAreas:  nil,
		},
		{
			name:      "no area column",
			query:     "wakad",
			ds:        NewDataset([]string{"Year", "Price"}, [][]any{{int64(2022), 1.0}}),
			wantAreas: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, areas := DetectAreas(tt.query, tt.ds)
			assert.Equal(t, tt.wantColumn, column)
			assert.Equal(t, tt.wantAreas, areas)
		})
	}
}

func TestDetectAreasSubstringOverMatch(t *testing.T) {
	ds := NewDataset([]string{"Area"}, [][]any{{"Ban"}, {"Baner"}})

	_, areas := DetectAreas("baner", ds)
	assert.Equal(t, []string{"Ban", "Baner"}, areas)
}

func TestMatchesArea(t *testing.T) {
	assert.True(t, matchesArea("WAKAD", "wakad"))
	assert.True(t, matchesArea(int64(42), "42"))
	assert.False(t, matchesArea("Wakad East", "Wakad"))
	assert.False(t, matchesArea(nil, "Wakad"))
}
