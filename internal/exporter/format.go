package exporter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// Columns returns the union of row keys in first-seen order.
func Columns(rows []domain.Row) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for _, key := range row.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	return columns
}

// cellValue converts a decoded JSON value into something a spreadsheet cell can hold.
// Integers stay integers, nested values are written as compact JSON text.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return cellValue(f)
		}
		return x.String()
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case string, bool, int, int64:
		return x
	case time.Time:
		return x
	case map[string]any, []any, domain.Row:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
	return fmt.Sprint(v)
}

// formatText renders a cell value as CSV text.
func formatText(v any) string {
	switch x := cellValue(v).(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
