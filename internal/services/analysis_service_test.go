package services

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/shared/testutil"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/validation"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

const wakadSummary = "Analysis for Wakad: (2023) Avg flat price = 6,000.00 (up 20.0% vs 2022). " +
	"Avg total sold = 8 (down 20.0% vs 2022)."

func sampleUpload(t *testing.T) AnalyzeInput {
	t.Helper()
	return AnalyzeInput{
		Filename: "realestate.xlsx",
		Upload:   testutil.NewWorkbookBytes(t, testutil.SampleHeader, testutil.SampleRows()),
	}
}

func newTestAnalysisService(t *testing.T, opts AnalysisOptions, enhancer SummaryEnhancer) (*AnalysisService, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	return NewAnalysisService(opts, enhancer, nil, logger), handler
}

func TestAnalyzeUpload(t *testing.T) {
	svc, handler := newTestAnalysisService(t, AnalysisOptions{}, nil)

	in := sampleUpload(t)
	in.Query = "How is wakad doing?"

	result, err := svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, wakadSummary, result.Summary)

	require.Contains(t, result.ChartData, "Wakad")
	buckets := result.ChartData["Wakad"]
	require.Len(t, buckets, 2)
	assert.Equal(t, 2022, buckets[0].Year)
	require.NotNil(t, buckets[0].Price)
	assert.Equal(t, 5000.0, *buckets[0].Price)
	require.NotNil(t, buckets[1].Demand)
	assert.Equal(t, 8.0, *buckets[1].Demand)

	require.Len(t, result.TableData, 2)
	for _, row := range result.TableData {
		area, ok := row.Get("final location")
		require.True(t, ok)
		assert.Equal(t, "Wakad", area)
	}

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Analysis completed")
	testutil.AssertLogAttr(t, handler, "source", SourceUpload)
}

func TestAnalyzeMultipleAreas(t *testing.T) {
	svc, _ := newTestAnalysisService(t, AnalysisOptions{}, nil)

	in := sampleUpload(t)
	in.Query = "compare Baner and Wakad"

	result, err := svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	// Areas keep dataset order, not query order.
	assert.Contains(t, result.Summary, "Analysis for Wakad:")
	assert.Contains(t, result.Summary, "Analysis for Baner:")
	assert.Less(t, strings.Index(result.Summary, "Wakad"), strings.Index(result.Summary, "Baner"))
	assert.Len(t, result.ChartData, 2)
	assert.Len(t, result.TableData, 4)
}

func TestAnalyzeSampleFallback(t *testing.T) {
	path := testutil.WriteWorkbookFile(t, t.TempDir(), "sample.xlsx", testutil.SampleHeader, testutil.SampleRows())
	svc, handler := newTestAnalysisService(t, AnalysisOptions{SamplePath: path}, nil)

	result, err := svc.Analyze(context.Background(), AnalyzeInput{Query: "anything"})
	require.NoError(t, err)

	assert.Equal(t, "No specific area detected. Dataset contains 4 records.", result.Summary)
	require.Contains(t, result.ChartData, domain.DatasetSeriesKey)
	assert.Len(t, result.ChartData[domain.DatasetSeriesKey], 2)
	assert.Len(t, result.TableData, 4)
	testutil.AssertLogAttr(t, handler, "source", SourceSample)
}

func TestAnalyzeTableRowLimit(t *testing.T) {
	svc, _ := newTestAnalysisService(t, AnalysisOptions{TableRowLimit: 1}, nil)

	result, err := svc.Analyze(context.Background(), sampleUpload(t))
	require.NoError(t, err)
	assert.Len(t, result.TableData, 1)
}

func TestAnalyzeDatasetErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		opts       AnalysisOptions
		input      AnalyzeInput
		wantIs     []error
		wantSource string
	}{
		{
			name:   "missing sample",
			opts:   AnalysisOptions{SamplePath: filepath.Join(dir, "missing.xlsx")},
			input:  AnalyzeInput{Query: "wakad"},
			wantIs: []error{ErrDatasetNotFound},
		},
		{
			name:       "sample path is a directory",
			opts:       AnalysisOptions{SamplePath: dir},
			input:      AnalyzeInput{},
			wantIs:     []error{ErrWorkbookUnreadable},
			wantSource: SourceSample,
		},
		{
			name:       "unsupported extension",
			input:      AnalyzeInput{Filename: "data.csv", Upload: []byte("a,b\n1,2\n")},
			wantIs:     []error{ErrWorkbookUnreadable, validation.ErrInvalidUpload},
			wantSource: SourceUpload,
		},
		{
			name:       "empty upload",
			input:      AnalyzeInput{Filename: "data.xlsx", Upload: []byte{}},
			wantIs:     []error{ErrWorkbookUnreadable, validation.ErrEmptyUpload},
			wantSource: SourceUpload,
		},
		{
			name:       "oversized upload",
			opts:       AnalysisOptions{MaxUploadBytes: 4},
			input:      AnalyzeInput{Filename: "data.xlsx", Upload: []byte("12345")},
			wantIs:     []error{ErrWorkbookUnreadable, validation.ErrUploadTooLarge},
			wantSource: SourceUpload,
		},
		{
			name:       "corrupt workbook",
			input:      AnalyzeInput{Filename: "data.xlsx", Upload: []byte("not a workbook")},
			wantIs:     []error{ErrWorkbookUnreadable},
			wantSource: SourceUpload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, handler := newTestAnalysisService(t, tt.opts, nil)

			result, err := svc.Analyze(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, result)
			for _, target := range tt.wantIs {
				assert.ErrorIs(t, err, target)
			}

			var loadErr *LoadError
			if tt.wantSource != "" {
				require.True(t, errors.As(err, &loadErr))
				assert.Equal(t, tt.wantSource, loadErr.Source)
			} else {
				assert.False(t, errors.As(err, &loadErr))
			}

			testutil.AssertLogContains(t, handler, slog.LevelWarn, "Dataset could not be loaded")
		})
	}
}

func TestAnalyzeUsesEnhancer(t *testing.T) {
	enhancer := &MockEnhancer{}
	enhancer.On("Enhance", mock.Anything, []string{"Wakad"}, wakadSummary).Return("Rewritten summary")

	svc, _ := newTestAnalysisService(t, AnalysisOptions{}, enhancer)

	in := sampleUpload(t)
	in.Query = "wakad"
	result, err := svc.Analyze(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "Rewritten summary", result.Summary)
	enhancer.AssertExpectations(t)
}

func TestAnalyzeNoAreaPassesNilAreasToEnhancer(t *testing.T) {
	enhancer := &MockEnhancer{}
	enhancer.On("Enhance", mock.Anything, []string(nil), mock.AnythingOfType("string")).Return("base")

	svc, _ := newTestAnalysisService(t, AnalysisOptions{}, enhancer)

	result, err := svc.Analyze(context.Background(), sampleUpload(t))
	require.NoError(t, err)
	assert.Equal(t, "base", result.Summary)
	enhancer.AssertExpectations(t)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	enhancer := &MockEnhancer{}
	svc, _ := newTestAnalysisService(t, AnalysisOptions{}, enhancer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, sampleUpload(t))
	assert.ErrorIs(t, err, context.Canceled)
	enhancer.AssertNotCalled(t, "Enhance", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := infrastructure.CreateBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)

	logger, _ := testutil.NewTestLogger(t)
	svc := NewAnalysisService(AnalysisOptions{}, nil, metrics, logger)

	_, err = svc.Analyze(context.Background(), sampleUpload(t))
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), AnalyzeInput{Filename: "bad.txt", Upload: []byte("x")})
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(2), counterTotal(t, rm, "analyses_total"))
}

func TestAnalyzeInputHasUpload(t *testing.T) {
	assert.False(t, AnalyzeInput{Query: "q"}.HasUpload())
	assert.True(t, AnalyzeInput{Filename: "a.xlsx"}.HasUpload())
	assert.True(t, AnalyzeInput{Upload: []byte{}}.HasUpload())
}

func TestMaxUploadBytesDefault(t *testing.T) {
	svc, _ := newTestAnalysisService(t, AnalysisOptions{}, nil)
	assert.Equal(t, validation.DefaultMaxUploadBytes, svc.MaxUploadBytes())
}

func counterTotal(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return 0
}
