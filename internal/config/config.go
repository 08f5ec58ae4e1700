package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize is the number of fonts probed between yields.
	// Ten keeps the uninterrupted work per batch small enough that an
	// interactive host never feels the scan, while keeping the yield
	// overhead negligible for a corpus of a few hundred fonts.
	DefaultBatchSize = 10

	// DefaultBatchDelay is the pause between batches. 20ms hands the
	// scheduler a real window without visibly slowing the scan.
	DefaultBatchDelay = 20 * time.Millisecond

	// DefaultHistoryLimit is the number of saved scans listed by the
	// history command when no limit is given.
	DefaultHistoryLimit = 20

	// DefaultVerifyRuns is the number of scan repetitions the verify
	// command performs to demonstrate fingerprint stability.
	DefaultVerifyRuns = 5

	// AppName is the application name used for XDG directory paths.
	AppName = "glyphprint"

	// BackendTable selects the built-in deterministic width-table
	// measurement backend.
	BackendTable = "table"

	// BackendSystem selects the host-font measurement backend.
	BackendSystem = "system"
)

// Config holds all options for a scanner invocation.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Backend selects the measurement backend: BackendTable or
	// BackendSystem.
	Backend string

	// BatchSize is the number of fonts probed per batch.
	BatchSize int

	// BatchDelay is the inter-batch yield duration.
	BatchDelay time.Duration

	// CorpusFile is an optional YAML file of additional font names to
	// probe beyond the built-in corpus.
	CorpusFile string

	// WidthTableFile is an optional YAML width table that replaces the
	// built-in metrics of the table backend.
	WidthTableFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written there instead of stdout.
	ReportFile string

	// SaveToDB persists the scan report to the local history database.
	// Off by default: a scan leaves no trace unless explicitly asked to.
	SaveToDB bool

	// DBDir is the directory of the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// Runs is the number of scan repetitions for the verify command.
	Runs int

	// Concurrency is the maximum number of simultaneous runs for the
	// verify command.
	Concurrency int
}

// NewConfig creates a Config with default values.
// All fields are set to safe, sensible defaults; callers override
// specific values after creation.
func NewConfig() *Config {
	return &Config{
		Backend:     BackendTable,
		BatchSize:   DefaultBatchSize,
		BatchDelay:  DefaultBatchDelay,
		Runs:        DefaultVerifyRuns,
		Concurrency: 1,
	}
}

// XDGDataDir returns the XDG data directory for glyphprint.
// On Linux: ~/.local/share/glyphprint
// On macOS: ~/Library/Application Support/glyphprint
// On Windows: %LOCALAPPDATA%\glyphprint
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for glyphprint.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after CLI parsing, before any
// scanning begins, and return the first error found: fixing one error
// often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Backend != BackendTable && c.Backend != BackendSystem {
		return ErrUnknownBackend
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.BatchDelay < 0 {
		return ErrInvalidBatchDelay
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Runs <= 0 {
		return ErrInvalidRuns
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}
