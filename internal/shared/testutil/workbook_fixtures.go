package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SampleHeader is the header row of the sample real-estate workbook fixture
var SampleHeader = []string{"final location", "year", "flat - weighted average rate", "total sold - igr"}

// SampleRows returns data rows for two areas over two years
func SampleRows() [][]any {
	return [][]any{
		{"Wakad", 2022, 5000, 10},
		{"Wakad", 2023, 6000, 8},
		{"Baner", 2022, 7000, 20},
		{"Baner", 2023, 7700, 25},
	}
}

// NewWorkbookBytes builds a single-sheet xlsx in memory.
// A nil cell is left blank.
func NewWorkbookBytes(t *testing.T, header []string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			t.Fatalf("header cell: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			t.Fatalf("set header %s: %v", cell, err)
		}
	}

	for r, row := range rows {
		for col, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				t.Fatalf("data cell: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set value %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteWorkbookFile writes a workbook fixture into dir and returns its path
func WriteWorkbookFile(t *testing.T, dir, name string, header []string, rows [][]any) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, NewWorkbookBytes(t, header, rows), 0o644); err != nil {
		t.Fatalf("write workbook file: %v", err)
	}
	return path
}

// ReadWorkbookRows opens xlsx bytes and returns every row of the first sheet
func ReadWorkbookRows(t *testing.T, data []byte) (string, [][]string) {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return sheet, rows
}
