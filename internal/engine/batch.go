package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/glyphprint/glyphprint/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchRunner executes multiple independent scan runs, optionally
// concurrently. Its main use is verifying fingerprint stability: the
// same device scanned N times must yield N identical fingerprints.
//
// Design decision: Each run gets a fresh engine from the factory rather
// than sharing one. An engine allows only one active scan, and fresh
// instances guarantee no session state leaks between runs.
type BatchRunner struct {
	// engineFactory creates a new engine for each run.
	engineFactory func() *Engine

	// concurrency is the maximum number of simultaneous runs.
	concurrency int

	// logger for batch-level logging.
	logger *slog.Logger

	// results stores completed reports, indexed by run.
	// Access is synchronized via mutex.
	results []*model.ScanReport
	mu      sync.Mutex
}

// BatchOption configures a BatchRunner.
type BatchOption func(*BatchRunner)

// WithBatchLogger sets a custom logger for the batch runner.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchRunner) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Default is 1 (sequential) if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchRunner) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchRunner creates a BatchRunner.
//
// The engineFactory is called once per run so every run starts from a
// clean session.
func NewBatchRunner(engineFactory func() *Engine, opts ...BatchOption) *BatchRunner {
	b := &BatchRunner{
		engineFactory: engineFactory,
		concurrency:   1,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run executes the given number of scan runs and returns one report per
// run, in run order. It respects the configured concurrency limit and
// context cancellation.
//
// A run that fails gets a report carrying the error message; other runs
// continue. The error return indicates cancellation, not per-run failure.
func (b *BatchRunner) Run(ctx context.Context, runs int) ([]*model.ScanReport, error) {
	b.logger.Info("starting batch runs",
		"runs", runs,
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate to keep run order in the results.
	b.results = make([]*model.ScanReport, runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i := range runs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			eng := b.engineFactory()
			report, err := eng.Scan(ctx, nil)
			if err != nil {
				b.logger.Warn("scan run failed",
					"run", i+1,
					"error", err,
				)
				report = model.NewScanReport(eng.CorpusSize())
				report.Error = err
				report.ErrorMessage = err.Error()
			}

			b.mu.Lock()
			b.results[i] = report
			b.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch runs complete",
		"runs", runs,
		"elapsed", time.Since(startTime),
	)

	return b.results, err
}

// DistinctFingerprints tallies the fingerprints across reports.
// A stable engine yields a single key; failed runs (empty fingerprint)
// are skipped.
func DistinctFingerprints(reports []*model.ScanReport) map[string]int {
	counts := make(map[string]int)
	for _, r := range reports {
		if r == nil || r.Fingerprint == "" {
			continue
		}
		counts[r.Fingerprint]++
	}
	return counts
}
