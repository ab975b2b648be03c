package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/exporter"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/services"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/validation"
	api "github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/api/v1"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts/domain"
)

type exportOptions struct {
	input  string
	output string
	format string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert table_data JSON into a spreadsheet",
		Long: `Reads rows from a JSON file, either an analysis result or a bare array of
row objects, and writes them as xlsx (default) or csv.`,
		Example: `  analyze --query wakad > result.json
  analyze export --input result.json --output wakad.xlsx`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "JSON file with table_data rows (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", exporter.DownloadFilename, "output file")
	cmd.Flags().StringVar(&opts.format, "format", "", "xlsx or csv (default: from the output extension, else xlsx)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	logger := cliLogger(cfg, cmd.ErrOrStderr())

	format, err := exportFormat(opts)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	rows, err := decodeRows(data)
	if err != nil {
		return err
	}

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(filepath.Dir(opts.output)); err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	svc := services.NewExportService(nil, logger)
	if err := svc.Write(cmd.Context(), f, rows, format); err != nil {
		f.Close()
		os.Remove(opts.output)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), opts.output)
	return nil
}

// exportFormat prefers --format, then the output extension.
func exportFormat(opts *exportOptions) (services.Format, error) {
	if opts.format != "" {
		return services.ParseFormat(strings.ToLower(opts.format))
	}
	if strings.EqualFold(filepath.Ext(opts.output), ".csv") {
		return services.FormatCSV, nil
	}
	return services.FormatXLSX, nil
}

// decodeRows accepts {"table_data": [...]} or a bare array of rows.
func decodeRows(data []byte) ([]domain.Row, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []domain.Row
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("invalid rows: %w", err)
		}
		return rows, nil
	}

	var req api.ExportRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("invalid table_data document: %w", err)
	}
	return req.TableData, nil
}
