package infrastructure

import (
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics holds the service's instruments. Every field is non-nil
// after CreateBusinessMetrics succeeds, even on a no-op meter.
type BusinessMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Tagged with outcome and source ("upload" or "sample").
	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	DetectedAreas    metric.Int64Histogram
	SummaryRewrites  metric.Int64Counter

	ExportsTotal metric.Int64Counter
	ExportedRows metric.Int64Histogram
}

// CreateBusinessMetrics registers all instruments on meter.
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m    BusinessMetrics
		errs []error
	)
	keep := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error

	m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"))
	keep(err)
	m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"), metric.WithUnit("s"))
	keep(err)
	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"))
	keep(err)

	m.AnalysesTotal, err = meter.Int64Counter("analyses_total",
		metric.WithDescription("Dataset analyses by outcome and dataset source"))
	keep(err)
	m.AnalysisDuration, err = meter.Float64Histogram("analysis_duration_seconds",
		metric.WithDescription("Time spent loading, aggregating and summarizing a dataset"), metric.WithUnit("s"))
	keep(err)
	m.DetectedAreas, err = meter.Int64Histogram("analysis_detected_areas",
		metric.WithDescription("Number of areas detected per query"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 3, 5, 10))
	keep(err)
	m.SummaryRewrites, err = meter.Int64Counter("summary_rewrites_total",
		metric.WithDescription("Language model summary rewrites by outcome"))
	keep(err)

	m.ExportsTotal, err = meter.Int64Counter("exports_total",
		metric.WithDescription("Spreadsheet exports by outcome"))
	keep(err)
	m.ExportedRows, err = meter.Int64Histogram("exported_rows",
		metric.WithDescription("Rows written per export"),
		metric.WithExplicitBucketBoundaries(0, 10, 100, 1000, 10000))
	keep(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}
