package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/exporter"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/shared/testutil"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func exportRows() []domain.Row {
	return []domain.Row{
		domain.NewRow([]string{"Area", "Year", "Price"}, []any{"Wakad", int64(2022), 5000.5}),
		domain.NewRow([]string{"Area", "Year", "Price"}, []any{"Baner", int64(2023), nil}),
	}
}

func TestExport(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	svc := NewExportService(nil, logger)

	data, err := svc.Export(context.Background(), exportRows())
	require.NoError(t, err)

	sheet, rows := testutil.ReadWorkbookRows(t, data)
	assert.Equal(t, exporter.SheetName, sheet)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Area", "Year", "Price"}, rows[0])
	assert.Equal(t, []string{"Wakad", "2022", "5000.5"}, rows[1])
	assert.Equal(t, []string{"Baner", "2023"}, rows[2])

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Export completed")
}

func TestExportNoRows(t *testing.T) {
	svc := NewExportService(nil, nil)

	for _, rows := range [][]domain.Row{nil, {}} {
		data, err := svc.Export(context.Background(), rows)
		assert.ErrorIs(t, err, ErrNoTableData)
		assert.Nil(t, data)
	}
}

func TestExportWriteCSV(t *testing.T) {
	svc := NewExportService(nil, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Write(context.Background(), &buf, exportRows(), FormatCSV))

	text := strings.TrimPrefix(buf.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Equal(t, []string{"Area,Year,Price", "Wakad,2022,5000.5", "Baner,2023,"}, lines)
}

func TestExportWriteFailures(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{name: "xlsx writer failure", format: FormatXLSX},
		{name: "csv writer failure", format: FormatCSV},
		{name: "unknown format", format: Format("pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutil.NewTestLogger(t)
			svc := NewExportService(nil, logger)

			err := svc.Write(context.Background(), failingWriter{}, exportRows(), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExportFailed)

			var exportErr *ExportError
			assert.True(t, errors.As(err, &exportErr))
			testutil.AssertLogContains(t, handler, slog.LevelError, "Export failed")
		})
	}
}

func TestExportCanceledContext(t *testing.T) {
	svc := NewExportService(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Export(ctx, exportRows())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "xlsx", want: FormatXLSX},
		{input: "csv", want: FormatCSV},
		{input: "XLSX", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
