// Package exporter serializes table rows into downloadable files.
//
// WriteXLSX produces the single-sheet workbook returned by the download
// endpoint. WriteCSV produces the same layout as CSV for the command line.
// Both derive the header from the union of row keys in first-seen order.
//
// Example usage:
//
//	data, err := exporter.RowsToXLSX(result.TableData)
//	if errors.Is(err, exporter.ErrNoRows) {
//	    // nothing to export
//	}
package exporter
