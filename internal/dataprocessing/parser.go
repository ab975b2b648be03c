package dataprocessing

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/sahilpilke/RealEstateAnalysis-Project/internal/errors"
)

// builtinDateFormats are the spreadsheet built-in number format ids that render dates or times.
var builtinDateFormats = map[int]struct{}{
	14: {}, 15: {}, 16: {}, 17: {}, 18: {}, 19: {}, 20: {}, 21: {}, 22: {},
	27: {}, 28: {}, 29: {}, 30: {}, 31: {}, 32: {}, 33: {}, 34: {}, 35: {}, 36: {},
	45: {}, 46: {}, 47: {},
	50: {}, 51: {}, 52: {}, 53: {}, 54: {}, 55: {}, 56: {}, 57: {}, 58: {},
}

// ParseWorkbookFile opens an xlsx file on disk and loads its first sheet.
func ParseWorkbookFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).With("path", path)
	}
	defer file.Close()
	return ParseWorkbook(file)
}

// ParseWorkbook loads the first sheet of an xlsx workbook.
// The first row is the header. Fully blank rows are skipped.
// Each cell keeps the type excelize stored it with: numbers become int64 or
// float64, date-formatted numbers and ISO date cells become time.Time,
// booleans stay bool and text stays string even when it looks numeric.
// A column holding only numbers is widened to float64 when any cell is
// fractional or missing.
func ParseWorkbook(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil)
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).With("sheet", sheet)
	}
	if len(raw) == 0 {
		return NewDataset(nil, nil), nil
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}
	columns := buildHeader(raw[0], width)

	var values [][]any
	for i, row := range raw[1:] {
		if isBlankRow(row) {
			continue
		}
		rowNumber := i + 2
		out := make([]any, width)
		for col := 0; col < len(row) && col < width; col++ {
			v, err := readCell(f, sheet, col+1, rowNumber, row[col])
			if err != nil {
				return nil, apperrors.NewParsingError("failed to read cell", err).With("sheet", sheet)
			}
			out[col] = v
		}
		values = append(values, out)
	}

	for col := 0; col < width; col++ {
		widenNumericColumn(values, col)
	}

	return NewDataset(columns, values), nil
}

// readCell converts one raw sheet value using the cell's stored type.
func readCell(f *excelize.File, sheet string, col, row int, text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return text == "1" || strings.EqualFold(text, "true"), nil
	case excelize.CellTypeDate:
		if t, ok := parseISOCell(text); ok {
			return t, nil
		}
		return text, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, ok := parseNumberCell(text)
		if !ok {
			return textCell(text), nil
		}
		if isDateCell(f, sheet, cell) {
			serial, _ := ToFloat(n)
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.Truncate(time.Millisecond), nil
			}
		}
		return n, nil
	default:
		// Shared, inline and formula strings, and error values such as #N/A.
		return textCell(text), nil
	}
}

func textCell(text string) any {
	if isMissingText(text) {
		return nil
	}
	return text
}

// parseNumberCell reads a stored number as int64 when the literal is
// integral and fits, float64 otherwise.
func parseNumberCell(text string) (any, bool) {
	text = strings.TrimSpace(text)
	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil && n < maxExactInt && n > -maxExactInt {
			return n, true
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return v, true
}

var isoCellLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05Z07:00", "2006-01-02"}

func parseISOCell(text string) (time.Time, bool) {
	for _, layout := range isoCellLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// widenNumericColumn turns int64 cells into float64 when every filled cell
// of the column is numeric and at least one is fractional or missing.
// Columns holding any other kind of value keep per-cell types.
func widenNumericColumn(values [][]any, col int) {
	widen := false
	for _, row := range values {
		switch row[col].(type) {
		case int64:
		case float64, nil:
			widen = true
		default:
			return
		}
	}
	if !widen {
		return
	}
	for _, row := range values {
		if n, ok := row[col].(int64); ok {
			row[col] = float64(n)
		}
	}
}

// buildHeader names blank header cells "Unnamed: N" and suffixes repeated
// names with ".1", ".2" and so on.
func buildHeader(row []string, width int) []string {
	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(row) {
			name = row[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := seen[name]; dup {
			base := name
			n := seen[base]
			for {
				n++
				candidate := fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[candidate]; !taken {
					name = candidate
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		columns[i] = name
	}
	return columns
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isDateCell reports whether the cell's number format renders a date.
func isDateCell(f *excelize.File, sheet, cell string) bool {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if _, ok := builtinDateFormats[style.NumFmt]; ok {
		return true
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return false
}

// isDateFormatCode inspects a custom number format for date tokens outside quoted literals.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote := false
	for _, r := range code {
		if r == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote {
			b.WriteRune(r)
		}
	}
	lower := strings.ToLower(b.String())
	return strings.Contains(lower, "yy") || strings.Contains(lower, "dd") ||
		strings.Contains(lower, "mmm") || strings.Contains(lower, "d/") ||
		strings.Contains(lower, "/d") || strings.Contains(lower, "hh")
}
