package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// maxExactInt is the largest magnitude a float64 represents without gaps.
const maxExactInt = 1 << 53

// missingMarkers are the text values read as missing cells.
var missingMarkers = map[string]struct{}{
	"":          {},
	"#N/A":      {},
	"#N/A N/A":  {},
	"#NA":       {},
	"-1.#IND":   {},
	"-1.#QNAN":  {},
	"-NaN":      {},
	"-nan":      {},
	"1.#IND":    {},
	"1.#QNAN":   {},
	"<NA>":      {},
	"N/A":       {},
	"NA":        {},
	"NULL":      {},
	"NaN":       {},
	"None":      {},
	"n/a":       {},
	"nan":       {},
	"null":      {},
}

// IsMissing reports whether v represents an absent cell.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case *float64:
		return x == nil || math.IsNaN(*x)
	}
	return false
}

// isMissingText reports whether raw sheet text should be read as a missing cell.
func isMissingText(raw string) bool {
	_, ok := missingMarkers[strings.TrimSpace(raw)]
	return ok
}

// ToFloat converts a numeric cell to float64.
// Numeric strings are accepted. Booleans, dates and other text are not numeric.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int64:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case *float64:
		if x == nil {
			return 0, false
		}
		f = *x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseYear converts a cell to an integer year by reading its text form as a
// number and truncating toward zero. Unparsable values report false.
func ParseYear(v any) (int, bool) {
	f, ok := yearNumber(v)
	if !ok {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// yearNumber reads a year cell as a float without truncation.
func yearNumber(v any) (float64, bool) {
	if IsMissing(v) {
		return 0, false
	}
	var f float64
	switch x := v.(type) {
	case int64:
		f = float64(x)
	case int:
		f = float64(x)
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= maxExactInt {
		return 0, false
	}
	return f, true
}

// CellText renders a cell the way it prints in a data frame, used for
// case-insensitive equality against detected area names.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return "nan"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) {
			return "nan"
		}
		if math.IsInf(x, 1) {
			return "inf"
		}
		if math.IsInf(x, -1) {
			return "-inf"
		}
		if x == math.Trunc(x) && math.Abs(x) < 1e16 {
			return strconv.FormatFloat(x, 'f', 1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	}
	return ""
}
