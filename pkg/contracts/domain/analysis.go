package domain

// DatasetSeriesKey is the chart series key used when no area was detected in the query.
const DatasetSeriesKey = "dataset"

// YearBucket is one point of a per-year chart series.
// Price and Demand are nil when the underlying column is unresolved
// or every value in the bucket is missing.
type YearBucket struct {
	Year   int      `json:"year"`
	Price  *float64 `json:"price"`
	Demand *float64 `json:"demand"`
}

// ChartSeries maps an area name (or DatasetSeriesKey) to its year buckets.
type ChartSeries map[string][]YearBucket

// AnalysisResult is the response body of an analysis request
type AnalysisResult struct {
	Summary   string      `json:"summary"`
	ChartData ChartSeries `json:"chart_data"`
	TableData []Row       `json:"table_data"`
}

// NewAnalysisResult returns a result with non-nil chart and table containers
// so that empty results serialize as {} and [] instead of null.
func NewAnalysisResult(summary string, chart ChartSeries, table []Row) *AnalysisResult {
	if chart == nil {
		chart = ChartSeries{}
	}
	if table == nil {
		table = []Row{}
	}
	for key, buckets := range chart {
		if buckets == nil {
			chart[key] = []YearBucket{}
		}
	}
	return &AnalysisResult{
		Summary:   summary,
		ChartData: chart,
		TableData: table,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
