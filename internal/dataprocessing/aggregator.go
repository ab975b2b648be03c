package dataprocessing

import (
	"fmt"
	"sort"

	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// DefaultTableRowLimit caps the number of rows returned with an analysis.
const DefaultTableRowLimit = 200

// Aggregation is the chart and table output of an analysis.
type Aggregation struct {
	Series domain.ChartSeries
	Table  []domain.Row
}

// AggregateOptions selects columns and the areas to slice by.
type AggregateOptions struct {
	Roles    ColumnRoles
	Areas    []string
	RowLimit int
}

// Aggregate builds per-year series and the table rows.
// With detected areas each area gets its own series and contributes its rows to
// the table in detection order. Without areas the whole dataset is summarized
// under domain.DatasetSeriesKey. The table is truncated to RowLimit rows.
func Aggregate(ds *Dataset, opts AggregateOptions) Aggregation {
	limit := opts.RowLimit
	if limit <= 0 {
		limit = DefaultTableRowLimit
	}

	series := domain.ChartSeries{}
	var table []int

	if len(opts.Areas) > 0 {
		for _, area := range opts.Areas {
			var rows []int
			if opts.Roles.Area != "" {
				rows = ds.Where(opts.Roles.Area, func(v any) bool { return matchesArea(v, area) })
			}
			series[area] = YearBuckets(ds, rows, opts.Roles)
			table = append(table, rows...)
		}
	} else {
		all := ds.AllIndexes()
		series[domain.DatasetSeriesKey] = YearBuckets(ds, all, opts.Roles)
		table = all
	}

	if len(table) > limit {
		table = table[:limit]
	}

	return Aggregation{
		Series: series,
		Table:  ds.Rows(table),
	}
}

// YearBuckets groups the given rows by year and averages price and demand per group.
// Groups whose year cannot be read as an integer are dropped. Buckets are sorted by year.
// Without a year column the result is empty.
func YearBuckets(ds *Dataset, rows []int, roles ColumnRoles) []domain.YearBucket {
	buckets := []domain.YearBucket{}
	if roles.Year == "" || len(rows) == 0 {
		return buckets
	}

	type group struct {
		raw  any
		rows []int
	}
	var order []string
	groups := make(map[string]*group)
	for _, i := range rows {
		v := ds.Value(i, roles.Year)
		if IsMissing(v) {
			continue
		}
		key := fmt.Sprintf("%T|%v", v, v)
		g, ok := groups[key]
		if !ok {
			g = &group{raw: v}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, i)
	}

	for _, key := range order {
		g := groups[key]
		year, ok := ParseYear(g.raw)
		if !ok {
			continue
		}
		buckets = append(buckets, domain.YearBucket{
			Year:   year,
			Price:  Mean(ds, g.rows, roles.Price),
			Demand: Mean(ds, g.rows, roles.Demand),
		})
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].Year < buckets[b].Year
	})
	return buckets
}

// Mean averages the numeric values of column over rows, skipping missing and non-numeric cells.
// It returns nil when the column is empty or no numeric value exists.
func Mean(ds *Dataset, rows []int, column string) *float64 {
	if column == "" || !ds.HasColumn(column) {
		return nil
	}
	var sum float64
	n := 0
	for _, i := range rows {
		f, ok := ToFloat(ds.Value(i, column))
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}
