package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

const (
	// ContentTypeXLSX is the MIME type of the download workbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// DownloadFilename is the attachment name offered to browsers.
	DownloadFilename = "filtered_data.xlsx"
	// SheetName is the only sheet in an exported workbook.
	SheetName = "Sheet1"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no table data provided")

// WriteXLSX writes rows as a single-sheet workbook: a header row of the
// union of keys followed by one row per record.
func WriteXLSX(w io.Writer, rows []domain.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()

	if name := f.GetSheetName(0); name != SheetName {
		if err := f.SetSheetName(name, SheetName); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	columns := Columns(rows)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(columns))
		for j, c := range columns {
			v, _ := row.Get(c)
			values[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// RowsToXLSX renders rows into an in-memory workbook.
func RowsToXLSX(rows []domain.Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
