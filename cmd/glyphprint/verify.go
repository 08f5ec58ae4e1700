package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/engine"
	"github.com/glyphprint/glyphprint/internal/log"
)

// NewVerifyCmd creates the verify command.
// It demonstrates fingerprint stability by scanning repeatedly and
// counting distinct fingerprints.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Scan repeatedly and check fingerprint stability",
		Long: `Verify runs the scan several times and compares the fingerprints.

A correct measurement backend yields the identical fingerprint on every
run; more than one distinct fingerprint means the backend is unstable
and its fingerprints cannot be trusted across sessions.

Examples:
  # Five sequential runs with the built-in width table
  glyphprint verify

  # Ten runs, four at a time, against the host fonts
  glyphprint verify --runs 10 --concurrency 4 --backend system`,
		Args: cobra.NoArgs,
		RunE: runVerifyCmd,
	}

	cmd.Flags().StringP("backend", "B", config.BackendTable,
		"Measurement backend: \"table\" or \"system\"")
	cmd.Flags().StringP("width-table", "w", "",
		"YAML width table replacing the built-in metrics (table backend only)")
	cmd.Flags().StringP("corpus", "C", "",
		"YAML file of additional font names to probe")
	cmd.Flags().IntP("runs", "r", config.DefaultVerifyRuns,
		"Number of scan repetitions")
	cmd.Flags().IntP("concurrency", "n", 1,
		"Maximum number of simultaneous runs")

	return cmd
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.Backend, err = cmd.Flags().GetString("backend"); err != nil {
		return err
	}
	if cfg.WidthTableFile, err = cmd.Flags().GetString("width-table"); err != nil {
		return err
	}
	if cfg.CorpusFile, err = cmd.Flags().GetString("corpus"); err != nil {
		return err
	}
	if cfg.Runs, err = cmd.Flags().GetInt("runs"); err != nil {
		return err
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return runVerify(ctx, cfg, logger)
}

// runVerify runs the repeated scans and prints the stability verdict.
func runVerify(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	measurer, err := buildMeasurer(cfg, logger)
	if err != nil {
		return err
	}

	c, err := buildCorpus(cfg)
	if err != nil {
		return err
	}

	runner := engine.NewBatchRunner(
		func() *engine.Engine {
			return engine.New(c, measurer, engine.WithEngineLogger(logger))
		},
		engine.WithConcurrency(cfg.Concurrency),
		engine.WithBatchLogger(logger),
	)

	fmt.Printf("Running %d scans (concurrency: %d)...\n\n", cfg.Runs, cfg.Concurrency)

	reports, err := runner.Run(ctx, cfg.Runs)
	if err != nil {
		return fmt.Errorf("verification runs failed: %w", err)
	}

	failed := 0
	for i, r := range reports {
		if r == nil || r.ErrorMessage != "" {
			failed++
			continue
		}
		fmt.Printf("  run %d: %s (detected %d, score %d)\n",
			i+1, r.Fingerprint, r.DetectedCount(), r.UniquenessScore)
	}

	counts := engine.DistinctFingerprints(reports)

	fmt.Println()
	switch {
	case failed == len(reports):
		return fmt.Errorf("all %d runs failed", failed)
	case len(counts) == 1 && failed == 0:
		fmt.Printf("STABLE: %d runs produced 1 distinct fingerprint\n", len(reports))
	case len(counts) == 1:
		fmt.Printf("STABLE with failures: %d of %d runs completed, 1 distinct fingerprint\n",
			len(reports)-failed, len(reports))
	default:
		fmt.Printf("UNSTABLE: %d distinct fingerprints across %d runs:\n", len(counts), len(reports))
		for fp, n := range counts {
			fmt.Printf("  %s seen %d time(s)\n", fp, n)
		}
		return fmt.Errorf("fingerprint is not stable across runs")
	}

	return nil
}
