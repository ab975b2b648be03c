package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowMarshalPreservesColumnOrder(t *testing.T) {
	row := NewRow([]string{"Year", "Area", "Price", "Notes"}, []any{int64(2023), "Wakad", 6000.5})

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"Year":2023,"Area":"Wakad","Price":6000.5,"Notes":null}`, string(data))
}

func TestRowUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantErr  bool
	}{
		{
			name:     "keeps document order",
			input:    `{"z":1,"a":"x","m":null}`,
			wantKeys: []string{"z", "a", "m"},
		},
		{
			name:     "empty object",
			input:    `{}`,
			wantKeys: []string{},
		},
		{
			name:    "array is rejected",
			input:   `[1,2]`,
			wantErr: true,
		},
		{
			name:    "truncated object",
			input:   `{"a":1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row Row
			err := json.Unmarshal([]byte(tt.input), &row)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, row.Keys())
		})
	}
}

func TestRowUnmarshalKeepsNumbersExact(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`{"Total Sold":12,"Price":5500.25}`), &row))

	v, ok := row.Get("Total Sold")
	require.True(t, ok)
	assert.Equal(t, json.Number("12"), v)

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"Total Sold":12,"Price":5500.25}`, string(out))
}

func TestRowSetOverwritesWithoutDuplicatingKey(t *testing.T) {
	var row Row
	row.Set("a", 1)
	row.Set("b", 2)
	row.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, row.Keys())
	v, _ := row.Get("a")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, row.Len())
}

func TestNewAnalysisResultEmptyContainers(t *testing.T) {
	res := NewAnalysisResult("s", nil, nil)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"s","chart_data":{},"table_data":[]}`, string(data))
}

func TestYearBucketNullFields(t *testing.T) {
	data, err := json.Marshal(YearBucket{Year: 2022, Price: Float(5000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2022,"price":5000,"demand":null}`, string(data))
}
