package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/app"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/config"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/infrastructure"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/services"
	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/validation"
	"github.com/sahilpilke/RealEstateAnalysis-Project/pkg/contracts"
)

type rootOptions struct {
	configFile string
	file       string
	query      string
	compact    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a real-estate workbook from the command line",
		Long: `Runs the same analysis pipeline as POST /api/analyze against a local
workbook (or the configured sample dataset) and prints the JSON result.`,
		Example: `  analyze --file data/pune.xlsx --query "compare wakad and baner"
  analyze --query "aundh prices"`,
		Version:      contracts.GetVersionInfo().String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (default: search config.yaml)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "workbook to analyze (.xlsx or .xlsm); defaults to the sample dataset")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text query naming one or more areas")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "print JSON without indentation")

	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// loadConfig resolves --config, falling back to the standard search.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.configFile != "" {
		return config.LoadFrom(opts.configFile)
	}
	return config.Load()
}

// cliLogger writes logs to stderr so stdout stays machine readable.
func cliLogger(cfg *config.Config, stderr io.Writer) *slog.Logger {
	return infrastructure.NewLogger(cfg.Logging, stderr)
}

func runAnalyze(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := cliLogger(cfg, cmd.ErrOrStderr())

	svc := services.NewAnalysisService(services.AnalysisOptions{
		SamplePath:     cfg.Data.SamplePath,
		MaxUploadBytes: cfg.Data.MaxUploadBytes,
		TableRowLimit:  cfg.Data.TableRowLimit,
	}, app.NewSummaryEnhancer(cfg.LLM, nil, logger), nil, logger)

	in := services.AnalyzeInput{Query: opts.query}
	if opts.file != "" {
		if err := validation.NewFileValidator(logger).ValidateWorkbookFile(opts.file); err != nil {
			return err
		}
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("failed to read workbook: %w", err)
		}
		in.Filename = filepath.Base(opts.file)
		in.Upload = data
	}

	result, err := svc.Analyze(cmd.Context(), in)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
