package dataprocessing

import (
	"encoding/json"
	"math"
	"time"

	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// cellTimeLayout renders workbook times, which carry no zone, without an offset.
const cellTimeLayout = "2006-01-02T15:04:05.999999"

// Sanitize returns a copy of v that is safe to encode as JSON.
// NaN and infinite floats become nil, integer kinds become int64, times become
// ISO 8601 strings, and containers are walked recursively. Unknown values pass through.
// Applying Sanitize twice yields the same result as applying it once.
func Sanitize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		return Sanitize(float64(x))
	case *float64:
		if x == nil || math.IsNaN(*x) || math.IsInf(*x, 0) {
			return (*float64)(nil)
		}
		f := *x
		return &f
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return sanitizeUnsigned(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return sanitizeUnsigned(x)
	case bool, string, json.Number:
		return x
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return formatTime(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Sanitize(val)
		}
		return out
	case domain.Row:
		return SanitizeRow(x)
	case []domain.Row:
		return SanitizeRows(x)
	case domain.YearBucket:
		return SanitizeBucket(x)
	case []domain.YearBucket:
		out := make([]domain.YearBucket, len(x))
		for i, b := range x {
			out[i] = SanitizeBucket(b)
		}
		return out
	case domain.ChartSeries:
		return SanitizeSeries(x)
	}
	return v
}

// formatTime drops the offset for UTC times, which is how excelize hands back
// zone-less cell dates. Times in any other location keep their offset.
func formatTime(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format(cellTimeLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func sanitizeUnsigned(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// SanitizeRow sanitizes every field of a row, keeping key order.
func SanitizeRow(row domain.Row) domain.Row {
	var out domain.Row
	for _, key := range row.Keys() {
		v, _ := row.Get(key)
		out.Set(key, Sanitize(v))
	}
	return out
}

// SanitizeRows sanitizes each row.
func SanitizeRows(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, len(rows))
	for i, row := range rows {
		out[i] = SanitizeRow(row)
	}
	return out
}

// SanitizeBucket clears non-finite averages.
func SanitizeBucket(b domain.YearBucket) domain.YearBucket {
	return domain.YearBucket{
		Year:   b.Year,
		Price:  finiteOrNil(b.Price),
		Demand: finiteOrNil(b.Demand),
	}
}

// SanitizeSeries sanitizes every bucket of every series.
func SanitizeSeries(series domain.ChartSeries) domain.ChartSeries {
	out := make(domain.ChartSeries, len(series))
	for key, buckets := range series {
		clean := make([]domain.YearBucket, len(buckets))
		for i, b := range buckets {
			clean[i] = SanitizeBucket(b)
		}
		out[key] = clean
	}
	return out
}

// SanitizeResult sanitizes a complete analysis result.
func SanitizeResult(res *domain.AnalysisResult) *domain.AnalysisResult {
	if res == nil {
		return nil
	}
	return domain.NewAnalysisResult(res.Summary, SanitizeSeries(res.ChartData), SanitizeRows(res.TableData))
}

func finiteOrNil(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	v := *f
	return &v
}
