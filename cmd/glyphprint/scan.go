package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/corpus"
	"github.com/glyphprint/glyphprint/internal/database"
	"github.com/glyphprint/glyphprint/internal/engine"
	"github.com/glyphprint/glyphprint/internal/log"
	"github.com/glyphprint/glyphprint/internal/measure"
	"github.com/glyphprint/glyphprint/internal/model"
	"github.com/glyphprint/glyphprint/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Detect installed fonts and derive a device fingerprint",
		Long: `Scan probes a corpus of candidate fonts through text-width measurement.

Each font is tested by rendering a probe string with the candidate stacked
on a monospace fallback and with the fallback alone; diverging widths mean
the candidate is installed. The detected set is hashed into a 16-character
fingerprint and mapped to a uniqueness score between 5 and 99.

The scan runs in small batches with a short pause between them, so a
full corpus never monopolizes the host.

Examples:
  # Scan with the built-in width table (deterministic)
  glyphprint scan

  # Probe the fonts actually installed on this machine
  glyphprint scan --backend system

  # Extend the corpus with custom font names
  glyphprint scan --corpus extra-fonts.yaml

  # Output JSON report to a file
  glyphprint scan --json -o report.json

  # Persist the result to the local history database
  glyphprint scan --save`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Measurement flags
	cmd.Flags().StringP("backend", "B", config.BackendTable,
		"Measurement backend: \"table\" (built-in metrics) or \"system\" (host fonts)")
	cmd.Flags().StringP("width-table", "w", "",
		"YAML width table replacing the built-in metrics (table backend only)")

	// Corpus flags
	cmd.Flags().StringP("corpus", "C", "",
		"YAML file of additional font names to probe")

	// Batch behavior flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of fonts probed per batch")
	cmd.Flags().DurationP("delay", "d", config.DefaultBatchDelay,
		"Pause between batches")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .glyphprint in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().BoolP("save", "s", false,
		"Save the scan result to the local history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
// The config file (if any) is applied first; flags the user set
// explicitly win over it.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	found := config.FindConfigFile(configPath)
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cf.Apply(cfg)
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if cmd.Flags().Changed("backend") {
		if cfg.Backend, err = cmd.Flags().GetString("backend"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.BatchDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("corpus") {
		if cfg.CorpusFile, err = cmd.Flags().GetString("corpus"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("width-table") {
		if cfg.WidthTableFile, err = cmd.Flags().GetString("width-table"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = cmd.Flags().GetBool("save"); err != nil {
		return nil, err
	}
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// buildMeasurer creates the measurement backend selected by the config.
func buildMeasurer(cfg *config.Config, logger *slog.Logger) (measure.Measurer, error) {
	switch cfg.Backend {
	case config.BackendSystem:
		return measure.NewSystem(measure.WithSystemLogger(logger)), nil
	case config.BackendTable:
		if cfg.WidthTableFile != "" {
			t, err := measure.LoadTable(cfg.WidthTableFile, measure.WithTableLogger(logger))
			if err != nil {
				return nil, fmt.Errorf("failed to load width table %s: %w", cfg.WidthTableFile, err)
			}
			return t, nil
		}
		return measure.NewDefaultTable(measure.WithTableLogger(logger)), nil
	default:
		return nil, config.ErrUnknownBackend
	}
}

// buildCorpus creates the font corpus, merging an optional user file
// after the built-in lists.
func buildCorpus(cfg *config.Config) (*corpus.Corpus, error) {
	if cfg.CorpusFile == "" {
		return corpus.Default(), nil
	}

	extra, err := corpus.LoadFile(cfg.CorpusFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus file %s: %w", cfg.CorpusFile, err)
	}
	return corpus.New(append(corpus.Default().Fonts(), extra...)), nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	measurer, err := buildMeasurer(cfg, logger)
	if err != nil {
		return err
	}

	c, err := buildCorpus(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting scan",
		"backend", cfg.Backend,
		"corpusSize", c.Len(),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	eng := engine.New(c, measurer,
		engine.WithBatchSize(cfg.BatchSize),
		engine.WithBatchDelay(cfg.BatchDelay),
		engine.WithEngineLogger(logger),
	)

	scanReport, err := eng.Scan(ctx, progressRenderer(os.Stderr))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	scanReport.Backend = cfg.Backend

	if err := outputReport(cfg, scanReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return saveScanReport(ctx, db, scanReport, logger)
}

// progressRenderer returns a progress callback that rewrites a single
// status line when the destination is an interactive terminal, and stays
// silent otherwise so piped output remains clean.
func progressRenderer(out *os.File) engine.ProgressFunc {
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return nil
	}

	return func(detected, completed, total int, font string) {
		fmt.Fprintf(out, "\r\033[Kprobing fonts... %d/%d detected %d (latest: %s)",
			completed, total, detected, font)
		if completed == total {
			fmt.Fprintln(out)
		}
	}
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ScanReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// A fingerprint identifies the device, so the file is owner-only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(scanReport)
	return err
}

// saveScanReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.HistoryDB, scanReport *model.ScanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveScanReport(ctx, scanReport); err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved", "session", scanReport.SessionID)
	return nil
}
