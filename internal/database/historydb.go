package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/glyphprint/glyphprint/internal/model"
)

// ErrAmbiguousSession is returned when a session ID prefix matches more
// than one stored scan.
var ErrAmbiguousSession = errors.New("session id prefix matches multiple scans")

// HistoryDB provides SQLite-based storage for scan reports.
// It manages connection pooling and provides methods for saving,
// listing, and retrieving past scans.
//
// Design decision: We store the full report as a JSON column alongside
// a few indexed summary columns. Summary columns make listing cheap;
// the JSON blob means schema churn in the report never needs a
// migration.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "glyphprint.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files,
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the SQLite database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Scans store one row per completed fingerprint scan
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		date_scanned DATETIME DEFAULT CURRENT_TIMESTAMP,
		backend TEXT NOT NULL,
		corpus_size INTEGER NOT NULL,
		detected_count INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		score INTEGER NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_session ON scans(session_id);
	CREATE INDEX IF NOT EXISTS idx_scans_date ON scans(date_scanned);
	CREATE INDEX IF NOT EXISTS idx_scans_fingerprint ON scans(fingerprint);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScanReport saves a completed scan report.
func (hdb *HistoryDB) SaveScanReport(ctx context.Context, report *model.ScanReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	degraded := 0
	if report.DegradedHash {
		degraded = 1
	}

	query := `
	INSERT INTO scans (session_id, date_scanned, backend, corpus_size, detected_count, fingerprint, score, degraded, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		report.SessionID,
		report.DateScanned.UTC().Format("2006-01-02 15:04:05"),
		report.Backend,
		report.CorpusSize,
		report.DetectedCount(),
		report.Fingerprint,
		report.UniquenessScore,
		degraded,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	return nil
}

// ScanSummary contains summary information about a stored scan.
// This is used for displaying history without loading the full report.
type ScanSummary struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// SessionID is the UUID assigned to the scan session.
	SessionID string

	// DateScanned is when the scan was performed.
	DateScanned time.Time

	// Backend is the measurement backend used.
	Backend string

	// CorpusSize is the number of fonts probed.
	CorpusSize int

	// DetectedCount is the number of fonts found available.
	DetectedCount int

	// Fingerprint is the stable device fingerprint.
	Fingerprint string

	// Score is the uniqueness score (5-99).
	Score int

	// Degraded reports whether the fingerprint came from the fallback hash.
	Degraded bool
}

// ListScans returns summaries of stored scans, newest first.
// A limit of 0 or less returns all scans.
func (hdb *HistoryDB) ListScans(ctx context.Context, limit int) ([]ScanSummary, error) {
	query := `
	SELECT id, session_id, date_scanned, backend, corpus_size, detected_count, fingerprint, score, degraded
	FROM scans
	ORDER BY date_scanned DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var results []ScanSummary
	for rows.Next() {
		var s ScanSummary
		var timestamp string
		var degraded int

		if err := rows.Scan(
			&s.ID,
			&s.SessionID,
			&timestamp,
			&s.Backend,
			&s.CorpusSize,
			&s.DetectedCount,
			&s.Fingerprint,
			&s.Score,
			&degraded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}

		s.DateScanned = parseTimestamp(timestamp)
		s.Degraded = degraded != 0
		results = append(results, s)
	}

	return results, rows.Err()
}

// GetScan retrieves a full scan report by session ID or a unique prefix
// of it. Returns nil without error when nothing matches, and
// ErrAmbiguousSession when the prefix matches more than one scan.
func (hdb *HistoryDB) GetScan(ctx context.Context, sessionID string) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE session_id LIKE ? || '%'
	LIMIT 2
	`

	rows, err := hdb.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	defer rows.Close()

	var payloads []string
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		payloads = append(payloads, reportJSON)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(payloads) {
	case 0:
		return nil, nil
	case 1:
		var report model.ScanReport
		if err := json.Unmarshal([]byte(payloads[0]), &report); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
		return &report, nil
	default:
		return nil, ErrAmbiguousSession
	}
}

// LatestScan retrieves the most recent stored scan report.
// Returns nil without error when the database is empty.
func (hdb *HistoryDB) LatestScan(ctx context.Context) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scans
	ORDER BY date_scanned DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scan: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// DeleteScan removes a stored scan by exact session ID.
// It reports whether a row was deleted.
func (hdb *HistoryDB) DeleteScan(ctx context.Context, sessionID string) (bool, error) {
	result, err := hdb.db.ExecContext(ctx, "DELETE FROM scans WHERE session_id = ?", sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete scan: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByFingerprint returns how many stored scans produced the given
// fingerprint. Useful for spotting whether a device's fingerprint has
// drifted across saved scans.
func (hdb *HistoryDB) CountByFingerprint(ctx context.Context, fingerprint string) (int, error) {
	var count int
	err := hdb.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM scans WHERE fingerprint = ?", fingerprint,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count fingerprints: %w", err)
	}
	return count, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
