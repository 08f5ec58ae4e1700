package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrUnknownBackend is returned when the measurement backend name
	// is neither "table" nor "system".
	ErrUnknownBackend = errors.New("unknown measurement backend: use \"table\" or \"system\"")

	// ErrInvalidBatchSize is returned when the batch size is not
	// positive. A batch size of zero would mean the scan loop never
	// advances.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidBatchDelay is returned when the inter-batch delay is
	// negative. Use 0 to disable yielding between batches.
	ErrInvalidBatchDelay = errors.New("invalid batch delay: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at
	// a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRuns is returned when the verify run count is not
	// positive.
	ErrInvalidRuns = errors.New("invalid run count: must be positive")

	// ErrInvalidConcurrency is returned when the verify concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
