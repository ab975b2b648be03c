package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/dataprocessing"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/llm"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/validation"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// Dataset sources recorded on logs and metrics.
const (
	SourceUpload = "upload"
	SourceSample = "sample"
)

// AnalyzeInput is one analysis request. Filename and Upload describe an
// uploaded workbook; when both are empty the sample dataset is used.
type AnalyzeInput struct {
	Query    string
	Filename string
	Upload   []byte
}

// HasUpload reports whether the caller supplied a workbook.
func (in AnalyzeInput) HasUpload() bool {
	return in.Filename != "" || in.Upload != nil
}

// SummaryEnhancer rewrites a deterministic summary. Implementations return
// base unchanged on any failure.
type SummaryEnhancer interface {
	Enhance(ctx context.Context, areas []string, base string) string
}

// AnalysisOptions configures dataset loading and table size.
type AnalysisOptions struct {
	SamplePath     string
	MaxUploadBytes int64
	TableRowLimit  int
}

// AnalysisService runs the analysis pipeline: load, resolve columns, detect
// areas, aggregate, summarize, rewrite and sanitize.
type AnalysisService struct {
	opts     AnalysisOptions
	enhancer SummaryEnhancer
	files    *validation.FileValidator
	uploads  *validation.UploadValidator
	metrics  *infrastructure.BusinessMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewAnalysisService creates the pipeline. A nil enhancer keeps deterministic
// summaries and nil metrics disables recording.
func NewAnalysisService(opts AnalysisOptions, enhancer SummaryEnhancer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TableRowLimit <= 0 {
		opts.TableRowLimit = dataprocessing.DefaultTableRowLimit
	}
	logger = logger.With(slog.String("component", "analysis_service"))
	if enhancer == nil {
		enhancer = llm.NewEnhancer(nil, llm.EnhancerOptions{}, logger)
	}

	return &AnalysisService{
		opts:     opts,
		enhancer: enhancer,
		files:    validation.NewFileValidator(logger),
		uploads:  validation.NewUploadValidator(logger, opts.MaxUploadBytes),
		metrics:  metrics,
		tracer:   otel.Tracer("realestate/analysis"),
		logger:   logger,
	}
}

// MaxUploadBytes returns the effective upload size cap.
func (s *AnalysisService) MaxUploadBytes() int64 {
	return s.uploads.MaxSize()
}

// Analyze loads the dataset and produces the summary, chart series and table.
// It fails only when no dataset can be obtained or parsed.
func (s *AnalysisService) Analyze(ctx context.Context, in AnalyzeInput) (*domain.AnalysisResult, error) {
	source := SourceSample
	if in.HasUpload() {
		source = SourceUpload
	}

	ctx, span := s.tracer.Start(ctx, "analysis.analyze",
		trace.WithAttributes(
			attribute.String("dataset.source", source),
			attribute.Int("query.length", len(in.Query)),
		))
	defer span.End()

	start := time.Now()

	ds, err := s.loadDataset(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		infrastructure.RecordError(ctx, err)
		s.record(ctx, source, "error", start)
		s.logger.WarnContext(ctx, "Dataset could not be loaded",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.record(ctx, source, "canceled", start)
		return nil, err
	}

	roles := dataprocessing.ResolveRoles(ds.Columns())
	areaColumn, areas := dataprocessing.DetectAreas(in.Query, ds)
	infrastructure.AddSpanEvent(ctx, "areas.detected",
		attribute.String("area.column", areaColumn),
		attribute.StringSlice("areas", areas))

	agg := dataprocessing.Aggregate(ds, dataprocessing.AggregateOptions{
		Roles:    roles,
		Areas:    areas,
		RowLimit: s.opts.TableRowLimit,
	})

	summary := dataprocessing.BuildSummary(areas, ds, areaColumn)
	summary = s.enhancer.Enhance(ctx, areas, summary)

	result := dataprocessing.SanitizeResult(domain.NewAnalysisResult(summary, agg.Series, agg.Table))

	span.SetAttributes(
		attribute.Int("dataset.rows", ds.Len()),
		attribute.Int("areas.count", len(areas)),
		attribute.Int("table.rows", len(result.TableData)),
	)
	s.record(ctx, source, "success", start)
	if s.metrics != nil {
		s.metrics.DetectedAreas.Record(ctx, int64(len(areas)))
	}

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("source", source),
		slog.Int("rows", ds.Len()),
		slog.Int("areas", len(areas)),
		slog.Int("table_rows", len(result.TableData)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// loadDataset parses the upload when present, otherwise the sample workbook.
func (s *AnalysisService) loadDataset(ctx context.Context, in AnalyzeInput) (*dataprocessing.Dataset, error) {
	if in.HasUpload() {
		if err := s.uploads.Validate(in.Filename, int64(len(in.Upload))); err != nil {
			return nil, &LoadError{Source: SourceUpload, Err: err}
		}
		ds, err := dataprocessing.ParseWorkbook(bytes.NewReader(in.Upload))
		if err != nil {
			return nil, &LoadError{Source: SourceUpload, Err: err}
		}
		s.logger.DebugContext(ctx, "Upload parsed",
			slog.String("filename", in.Filename),
			slog.Int("rows", ds.Len()),
			slog.Int("columns", len(ds.Columns())))
		return ds, nil
	}

	if err := s.files.ValidateWorkbookFile(s.opts.SamplePath); err != nil {
		if errors.Is(err, validation.ErrFileNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, &LoadError{Source: SourceSample, Err: err}
	}
	ds, err := dataprocessing.ParseWorkbookFile(s.opts.SamplePath)
	if err != nil {
		return nil, &LoadError{Source: SourceSample, Err: err}
	}
	return ds, nil
}

func (s *AnalysisService) record(ctx context.Context, source, outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	)
	s.metrics.AnalysesTotal.Add(ctx, 1, attrs)
	s.metrics.AnalysisDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}
