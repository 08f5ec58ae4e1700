package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/corpus"
	"github.com/glyphprint/glyphprint/internal/fingerprint"
	"github.com/glyphprint/glyphprint/internal/measure"
	"github.com/glyphprint/glyphprint/internal/model"
	"github.com/glyphprint/glyphprint/internal/pipeline"
)

// ErrScanInProgress is returned when Scan is called while another scan
// is active on the same engine. The caller gets an explicit signal
// rather than a silent no-op, so orchestrators can surface it.
var ErrScanInProgress = errors.New("scan already in progress")

// ProgressFunc receives one call per detected font: the cumulative
// detected count, the cumulative tested count, the corpus size, and the
// font that was just detected.
type ProgressFunc func(detected, completed, total int, font string)

// Engine is the font-detection engine. It owns an immutable corpus and
// the transient session state of the most recent scan.
//
// Design decision: Session state lives on the engine, guarded by a
// mutex, so an orchestrator can read progress (DetectedFonts, IsScanning)
// from another goroutine while the scan loop runs. There is no true
// parallelism inside a scan; the mutex only covers the state handoff
// between the scanning goroutine and readers.
type Engine struct {
	// corpus is the font list probed by every scan. Immutable.
	corpus *corpus.Corpus

	// prober runs the per-font availability test.
	prober *Prober

	// hasher derives the fingerprint from the detected list.
	hasher *fingerprint.Hasher

	// backend names the measurement backend for reports.
	backend string

	// batchSize is the number of fonts probed between yields.
	batchSize int

	// batchDelay is the pause between batches that hands control back
	// to the scheduler.
	batchDelay time.Duration

	// logger for structured logging.
	logger *slog.Logger

	// mu guards the session state below.
	mu       sync.Mutex
	scanning bool
	detected []string
	fprint   string
	score    int
	scored   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithBatchSize sets the number of fonts probed per batch.
// Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithBatchDelay sets the inter-batch yield duration.
// Negative values are ignored.
func WithBatchDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.batchDelay = d
		}
	}
}

// WithHasher sets a custom fingerprint hasher, typically to inject a
// digester in tests or degraded environments.
func WithHasher(h *fingerprint.Hasher) Option {
	return func(e *Engine) {
		e.hasher = h
	}
}

// WithEngineLogger sets a custom logger for the engine.
func WithEngineLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine probing the given corpus through the given
// measurement backend.
func New(c *corpus.Corpus, m measure.Measurer, opts ...Option) *Engine {
	e := &Engine{
		corpus:     c,
		batchSize:  config.DefaultBatchSize,
		batchDelay: config.DefaultBatchDelay,
	}
	if m != nil {
		e.backend = m.Name()
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.prober == nil {
		e.prober = NewProber(m, WithProberLogger(e.logger))
	}
	if e.hasher == nil {
		e.hasher = fingerprint.NewHasher(fingerprint.WithHasherLogger(e.logger))
	}

	return e
}

// Scan probes the full corpus and returns the completed report.
// onProgress (optional) fires once per detected font. The scan always
// runs to completion and produces exactly one report, except when ctx is
// cancelled, in which case the context error is returned and no report
// is produced.
//
// Returns ErrScanInProgress when a scan is already active; the running
// scan and its session state are unaffected.
func (e *Engine) Scan(ctx context.Context, onProgress ProgressFunc) (*model.ScanReport, error) {
	e.mu.Lock()
	if e.scanning {
		e.mu.Unlock()
		return nil, ErrScanInProgress
	}
	e.scanning = true
	e.detected = nil
	e.fprint = ""
	e.score = 0
	e.scored = false
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.scanning = false
		e.mu.Unlock()
	}()

	report := model.NewScanReport(e.corpus.Len())
	report.Backend = e.backend
	start := time.Now()

	// Mirror detections into session state before notifying the caller,
	// so concurrent readers see a hit no later than the orchestrator.
	progress := func(detected, completed, total int, font string) {
		e.mu.Lock()
		e.detected = append(e.detected, font)
		e.mu.Unlock()

		if onProgress != nil {
			onProgress(detected, completed, total, font)
		}
	}

	p := pipeline.New(pipeline.WithLogger(e.logger))
	p.AddSteps(
		NewDetectStep(e.corpus, e.prober,
			WithDetectBatchSize(e.batchSize),
			WithDetectBatchDelay(e.batchDelay),
			WithDetectProgress(progress),
			WithDetectLogger(e.logger),
		),
		NewFingerprintStep(e.hasher),
		NewScoreStep(),
	)

	if err := p.Execute(ctx, report); err != nil {
		return nil, err
	}

	report.Completed = true
	report.Elapsed = time.Since(start)

	e.mu.Lock()
	e.fprint = report.Fingerprint
	e.score = report.UniquenessScore
	e.scored = true
	e.mu.Unlock()

	e.logger.Info("scan completed",
		"detected", report.DetectedCount(),
		"tested", report.TestedFonts,
		"fingerprint", report.Fingerprint,
		"score", report.UniquenessScore,
		"elapsed", report.Elapsed,
	)

	return report, nil
}

// Reset returns the engine to its post-construction session state:
// no detected fonts, no fingerprint, no score. The corpus is untouched.
//
// The scanning flag is owned by Scan's lifecycle and is not cleared
// here: a Reset issued while a scan is active discards the session data
// accumulated so far but leaves the re-entrancy guard armed until that
// scan returns.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.detected = nil
	e.fprint = ""
	e.score = 0
	e.scored = false
}

// DetectedFonts returns a copy of the fonts detected so far, in
// detection order.
func (e *Engine) DetectedFonts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, len(e.detected))
	copy(out, e.detected)
	return out
}

// Fingerprint returns the fingerprint of the last completed scan, or
// the empty string if no scan has completed since construction or Reset.
func (e *Engine) Fingerprint() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fprint
}

// Score returns the uniqueness score of the last completed scan.
// The second return value is false if no scan has completed.
func (e *Engine) Score() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score, e.scored
}

// IsScanning reports whether a scan is currently active.
func (e *Engine) IsScanning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scanning
}

// CorpusSize returns the size of the immutable corpus.
func (e *Engine) CorpusSize() int {
	return e.corpus.Len()
}
