package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// ContentTypeCSV is the MIME type of CSV exports.
const ContentTypeCSV = "text/csv; charset=utf-8"

// CSVOptions configures CSV writing behavior
type CSVOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes rows as CSV with the same column layout as WriteXLSX.
func WriteCSV(w io.Writer, rows []domain.Row, opts CSVOptions) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	columns := Columns(rows)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(columns))
	for i, row := range rows {
		for j, c := range columns {
			v, _ := row.Get(c)
			record[j] = formatText(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
