package dataprocessing

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

func TestSanitizeScalars(t *testing.T) {
	ts := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "nil", input: nil, want: nil},
		{name: "NaN", input: math.NaN(), want: nil},
		{name: "positive infinity", input: math.Inf(1), want: nil},
		{name: "negative infinity", input: math.Inf(-1), want: nil},
		{name: "float", input: 1.5, want: 1.5},
		{name: "float32", input: float32(2.5), want: 2.5},
		{name: "int", input: 7, want: int64(7)},
		{name: "int32", input: int32(-3), want: int64(-3)},
		{name: "uint16", input: uint16(9), want: int64(9)},
		{name: "bool", input: true, want: true},
		{name: "string", input: "Wakad", want: "Wakad"},
		{name: "time", input: ts, want: "2023-04-01T10:30:00"},
		{name: "time with milliseconds", input: ts.Add(250 * time.Millisecond), want: "2023-04-01T10:30:00.25"},
		{name: "time with offset", input: ts.In(time.FixedZone("IST", 5*3600+1800)), want: "2023-04-01T16:00:00+05:30"},
		{name: "zero time", input: time.Time{}, want: nil},
		{name: "json number", input: json.Number("12"), want: json.Number("12")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeContainers(t *testing.T) {
	input := map[string]any{
		"list":   []any{1, math.NaN(), "x"},
		"nested": map[string]any{"inf": math.Inf(1)},
	}

	got := Sanitize(input)

	assert.Equal(t, map[string]any{
		"list":   []any{int64(1), nil, "x"},
		"nested": map[string]any{"inf": nil},
	}, got)
}

func TestSanitizeRowKeepsOrder(t *testing.T) {
	row := domain.NewRow([]string{"b", "a", "c"}, []any{math.NaN(), 2, "x"})

	clean := SanitizeRow(row)

	assert.Equal(t, []string{"b", "a", "c"}, clean.Keys())
	data, err := json.Marshal(clean)
	require.NoError(t, err)
	assert.Equal(t, `{"b":null,"a":2,"c":"x"}`, string(data))
}

func TestSanitizeSeries(t *testing.T) {
	nan := math.NaN()
	series := domain.ChartSeries{
		"Wakad": {{Year: 2022, Price: &nan, Demand: domain.Float(3)}},
	}

	clean := SanitizeSeries(series)

	require.Len(t, clean["Wakad"], 1)
	assert.Nil(t, clean["Wakad"][0].Price)
	assert.Equal(t, 3.0, *clean["Wakad"][0].Demand)
	assert.True(t, math.IsNaN(*series["Wakad"][0].Price), "input must not be mutated")
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []any{
		nil,
		math.NaN(),
		uint64(math.MaxUint64),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		map[string]any{"a": []any{math.Inf(-1), 3, "s", true}},
		domain.NewRow([]string{"x"}, []any{math.NaN()}),
		domain.ChartSeries{"dataset": {{Year: 1, Price: domain.Float(math.Inf(1))}}},
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		assert.Equal(t, once, twice)
	}
}

func TestSanitizeResultMarshals(t *testing.T) {
	nan := math.NaN()
	res := &domain.AnalysisResult{
		Summary:   "s",
		ChartData: domain.ChartSeries{"dataset": {{Year: 2022, Price: &nan}}},
		TableData: []domain.Row{domain.NewRow([]string{"p"}, []any{math.Inf(1)})},
	}

	_, err := json.Marshal(res)
	require.Error(t, err, "raw NaN must not be encodable")

	data, err := json.Marshal(SanitizeResult(res))
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"s","chart_data":{"dataset":[{"year":2022,"price":null,"demand":null}]},"table_data":[{"p":null}]}`, string(data))
}
