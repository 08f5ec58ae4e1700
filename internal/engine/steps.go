package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/corpus"
	"github.com/glyphprint/glyphprint/internal/fingerprint"
	"github.com/glyphprint/glyphprint/internal/model"
)

// DetectStep probes the corpus in fixed-size batches.
//
// Each batch runs synchronously; between batches the step suspends for a
// short fixed delay, handing control back to the scheduler. This bounds
// the worst-case stretch of uninterrupted work to one batch regardless
// of corpus size. The progress callback fires once per detected font,
// not once per font tested.
type DetectStep struct {
	// corpus is the font list to probe.
	corpus *corpus.Corpus

	// prober runs the availability test for each font.
	prober *Prober

	// batchSize is the number of fonts probed between yields.
	batchSize int

	// batchDelay is the inter-batch suspension.
	batchDelay time.Duration

	// onProgress fires per detected font. May be nil.
	onProgress ProgressFunc

	// logger for structured logging.
	logger *slog.Logger
}

// DetectStepOption configures a DetectStep.
type DetectStepOption func(*DetectStep)

// WithDetectBatchSize sets the batch size. Values below 1 are ignored.
func WithDetectBatchSize(n int) DetectStepOption {
	return func(s *DetectStep) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithDetectBatchDelay sets the inter-batch yield duration.
func WithDetectBatchDelay(d time.Duration) DetectStepOption {
	return func(s *DetectStep) {
		if d >= 0 {
			s.batchDelay = d
		}
	}
}

// WithDetectProgress sets the per-detection callback.
func WithDetectProgress(fn ProgressFunc) DetectStepOption {
	return func(s *DetectStep) {
		s.onProgress = fn
	}
}

// WithDetectLogger sets a custom logger for the detect step.
func WithDetectLogger(logger *slog.Logger) DetectStepOption {
	return func(s *DetectStep) {
		s.logger = logger
	}
}

// NewDetectStep creates the corpus-probing step.
func NewDetectStep(c *corpus.Corpus, p *Prober, opts ...DetectStepOption) *DetectStep {
	s := &DetectStep{
		corpus:     c,
		prober:     p,
		batchSize:  config.DefaultBatchSize,
		batchDelay: config.DefaultBatchDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect"
}

// Do probes every font in the corpus. Cancellation is honored at batch
// boundaries only; a batch's probes execute as a unit.
func (s *DetectStep) Do(ctx context.Context, report *model.ScanReport) error {
	total := s.corpus.Len()
	completed := 0

	for start := 0; start < total; start += s.batchSize {
		if start > 0 {
			// Yield between batches.
			select {
			case <-ctx.Done():
				report.TestedFonts = completed
				return ctx.Err()
			case <-time.After(s.batchDelay):
			}
		}

		for _, font := range s.corpus.Batch(start, start+s.batchSize) {
			completed++

			if !s.prober.Available(font) {
				continue
			}

			if report.AddDetectedFont(font) && s.onProgress != nil {
				s.onProgress(report.DetectedCount(), completed, total, font)
			}
		}
	}

	report.TestedFonts = completed

	s.logger.Debug("corpus probing finished",
		"detected", report.DetectedCount(),
		"tested", completed,
	)

	return nil
}

// FingerprintStep derives the identifier from the detected-font list.
type FingerprintStep struct {
	// hasher performs the sort-join-hash derivation.
	hasher *fingerprint.Hasher
}

// NewFingerprintStep creates the fingerprint derivation step.
func NewFingerprintStep(h *fingerprint.Hasher) *FingerprintStep {
	return &FingerprintStep{hasher: h}
}

// Name returns the step name.
func (s *FingerprintStep) Name() string {
	return "fingerprint"
}

// Do computes the fingerprint. A degraded (fallback) hash is recorded in
// the report but is not an error: the scan still completes.
func (s *FingerprintStep) Do(_ context.Context, report *model.ScanReport) error {
	fp, degraded := s.hasher.Fingerprint(report.DetectedFonts)
	report.Fingerprint = fp
	report.DegradedHash = degraded
	return nil
}

// ScoreStep computes the uniqueness score from the detected-font count.
type ScoreStep struct{}

// NewScoreStep creates the scoring step.
func NewScoreStep() *ScoreStep {
	return &ScoreStep{}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do maps the detected count onto the uniqueness scale.
func (s *ScoreStep) Do(_ context.Context, report *model.ScanReport) error {
	report.UniquenessScore = fingerprint.Score(report.DetectedCount())
	return nil
}
