// Package dataprocessing turns a real-estate workbook into chart series, table
// rows and a narrative summary.
//
// # Architecture
//
// The package is organized into the following stages:
//
//  1. Parser: loads the first sheet of an xlsx workbook into a Dataset
//  2. Column resolver: maps the price, demand, year and area roles onto column names
//  3. Area detector: finds which area values a free-text query mentions
//  4. Aggregator: builds per-year average series and the capped table rows
//  5. Summarizer: writes a deterministic latest-versus-previous-year narrative
//  6. Sanitizer: converts values into JSON-safe forms
//
// # Usage
//
//	ds, err := dataprocessing.ParseWorkbookFile("data/sample_realestate.xlsx")
//	if err != nil {
//	    return err
//	}
//	roles := dataprocessing.ResolveRoles(ds.Columns())
//	areaColumn, areas := dataprocessing.DetectAreas("compare wakad and baner", ds)
//	agg := dataprocessing.Aggregate(ds, dataprocessing.AggregateOptions{Roles: roles, Areas: areas})
//	summary := dataprocessing.BuildSummary(areas, ds, areaColumn)
//
// # Missing Data
//
// None of the stages fail on missing columns or unmatched areas. An unresolved
// role yields empty strings in ColumnRoles, null averages in the series, and
// omitted clauses in the summary. Only the parser returns errors.
//
// # Thread Safety
//
// A Dataset is read-only after parsing. All functions are pure and may be
// called concurrently.
package dataprocessing
