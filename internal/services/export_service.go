package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/exporter"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "xlsx" or "csv".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatXLSX, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ExportService renders table rows into downloadable files.
type ExportService struct {
	metrics *infrastructure.BusinessMetrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewExportService creates an export service. Nil metrics disables recording.
func NewExportService(metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		metrics: metrics,
		tracer:  otel.Tracer("realestate/export"),
		logger:  logger.With(slog.String("component", "export_service")),
	}
}

// Export renders rows as an xlsx workbook.
func (s *ExportService) Export(ctx context.Context, rows []domain.Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(ctx, &buf, rows, FormatXLSX); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders rows to w in the given format.
func (s *ExportService) Write(ctx context.Context, w io.Writer, rows []domain.Row, format Format) error {
	ctx, span := s.tracer.Start(ctx, "export.write",
		trace.WithAttributes(
			attribute.String("export.format", string(format)),
			attribute.Int("export.rows", len(rows)),
		))
	defer span.End()

	if len(rows) == 0 {
		s.record(ctx, format, "empty", 0)
		return ErrNoTableData
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	switch format {
	case FormatCSV:
		err = exporter.WriteCSV(w, rows, exporter.CSVOptions{BOMPrefix: true})
	case FormatXLSX, "":
		err = exporter.WriteXLSX(w, rows)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}

	if err != nil {
		if errors.Is(err, exporter.ErrNoRows) {
			s.record(ctx, format, "empty", 0)
			return ErrNoTableData
		}
		span.SetStatus(codes.Error, err.Error())
		infrastructure.RecordError(ctx, err)
		s.record(ctx, format, "error", 0)
		s.logger.ErrorContext(ctx, "Export failed",
			slog.String("format", string(format)),
			slog.Int("rows", len(rows)),
			slog.String("error", err.Error()))
		return &ExportError{Err: err}
	}

	s.record(ctx, format, "success", len(rows))
	s.logger.InfoContext(ctx, "Export completed",
		slog.String("format", string(format)),
		slog.Int("rows", len(rows)))
	return nil
}

func (s *ExportService) record(ctx context.Context, format Format, outcome string, rows int) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("format", string(format)),
		attribute.String("outcome", outcome),
	)
	s.metrics.ExportsTotal.Add(ctx, 1, attrs)
	if rows > 0 {
		s.metrics.ExportedRows.Record(ctx, int64(rows), attrs)
	}
}
