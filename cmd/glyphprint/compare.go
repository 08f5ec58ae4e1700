package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/database"
	"github.com/glyphprint/glyphprint/internal/model"
)

// Drift direction labels.
const (
	driftGrew      = "grew"
	driftShrank    = "shrank"
	driftUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares two saved scans from the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [session] [session]",
		Short: "Compare two saved scans",
		Long: `Compare shows how the detected font profile changed between two scans.

With no arguments, the latest two saved scans are compared. With one
session ID (or unique prefix), the latest scan is compared against it.
With two, those scans are compared directly.

The comparison shows fonts that appeared, fonts that disappeared,
whether the fingerprint changed, and the shift in the uniqueness score.

Examples:
  # Compare the latest two saved scans
  glyphprint compare

  # Compare the latest scan against a specific one
  glyphprint compare 550e8400

  # Compare two specific scans
  glyphprint compare 550e8400 7c9e6679

  # Output comparison in JSON format
  glyphprint compare --json`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	previous, current, err := resolveComparison(ctx, db, args)
	if err != nil {
		return err
	}

	result := compareScans(previous, current)

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputComparisonText(result)
}

// resolveComparison picks the two scans to compare from the arguments.
// Ordering: the older scan becomes "previous", the newer "current".
func resolveComparison(ctx context.Context, db *database.HistoryDB, args []string) (previous, current *model.ScanReport, err error) {
	switch len(args) {
	case 2:
		if previous, err = loadScan(ctx, db, args[0]); err != nil {
			return nil, nil, err
		}
		if current, err = loadScan(ctx, db, args[1]); err != nil {
			return nil, nil, err
		}
	case 1:
		if previous, err = loadScan(ctx, db, args[0]); err != nil {
			return nil, nil, err
		}
		if current, err = db.LatestScan(ctx); err != nil {
			return nil, nil, err
		}
		if current == nil {
			return nil, nil, errors.New("no saved scans found (use 'glyphprint scan --save' first)")
		}
		if current.SessionID == previous.SessionID {
			return nil, nil, errors.New("the given scan is the latest one; nothing to compare against")
		}
	default:
		scans, err := db.ListScans(ctx, 2)
		if err != nil {
			return nil, nil, err
		}
		if len(scans) < 2 {
			return nil, nil, fmt.Errorf("at least 2 saved scans are required for comparison (found %d)", len(scans))
		}
		// ListScans is newest first.
		if current, err = loadScan(ctx, db, scans[0].SessionID); err != nil {
			return nil, nil, err
		}
		if previous, err = loadScan(ctx, db, scans[1].SessionID); err != nil {
			return nil, nil, err
		}
	}

	if previous.DateScanned.After(current.DateScanned) {
		previous, current = current, previous
	}
	return previous, current, nil
}

// loadScan fetches one saved scan, turning a miss into a clear error.
func loadScan(ctx context.Context, db *database.HistoryDB, sessionID string) (*model.ScanReport, error) {
	scan, err := db.GetScan(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan %q: %w", sessionID, err)
	}
	if scan == nil {
		return nil, fmt.Errorf("no saved scan matches %q", sessionID)
	}
	return scan, nil
}

// ComparisonResult holds the result of comparing two saved scans.
type ComparisonResult struct {
	// PreviousScan contains metadata about the older scan.
	PreviousScan ScanMetadata `json:"previous_scan"`

	// CurrentScan contains metadata about the newer scan.
	CurrentScan ScanMetadata `json:"current_scan"`

	// FingerprintChanged reports whether the fingerprints differ.
	FingerprintChanged bool `json:"fingerprint_changed"`

	// AddedFonts are fonts detected in the current scan but not the previous.
	AddedFonts []string `json:"added_fonts,omitempty"`

	// RemovedFonts are fonts detected in the previous scan but not the current.
	RemovedFonts []string `json:"removed_fonts,omitempty"`

	// UnchangedCount is the number of fonts detected in both scans.
	UnchangedCount int `json:"unchanged_count"`

	// ScoreDelta is the change in uniqueness score.
	ScoreDelta int `json:"score_delta"`

	// Drift summarizes whether the font profile grew, shrank, or held.
	Drift string `json:"drift"`
}

// ScanMetadata contains metadata about a scan for comparison display.
type ScanMetadata struct {
	// SessionID is the scan's session identifier.
	SessionID string `json:"session_id"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// Backend is the measurement backend used.
	Backend string `json:"backend"`

	// Fingerprint is the derived fingerprint.
	Fingerprint string `json:"fingerprint"`

	// DetectedCount is the number of detected fonts.
	DetectedCount int `json:"detected_count"`

	// Score is the uniqueness score.
	Score int `json:"score"`
}

// compareScans diffs the detected font sets of two scans.
func compareScans(previous, current *model.ScanReport) *ComparisonResult {
	result := &ComparisonResult{
		PreviousScan:       scanMetadata(previous),
		CurrentScan:        scanMetadata(current),
		FingerprintChanged: previous.Fingerprint != current.Fingerprint,
		ScoreDelta:         current.UniquenessScore - previous.UniquenessScore,
	}

	previousSet := make(map[string]bool, previous.DetectedCount())
	for _, f := range previous.DetectedFonts {
		previousSet[f] = true
	}

	for _, f := range current.DetectedFonts {
		if previousSet[f] {
			result.UnchangedCount++
		} else {
			result.AddedFonts = append(result.AddedFonts, f)
		}
	}
	for _, f := range previous.DetectedFonts {
		if !current.HasFont(f) {
			result.RemovedFonts = append(result.RemovedFonts, f)
		}
	}

	switch {
	case current.DetectedCount() > previous.DetectedCount():
		result.Drift = driftGrew
	case current.DetectedCount() < previous.DetectedCount():
		result.Drift = driftShrank
	default:
		result.Drift = driftUnchanged
	}

	return result
}

// scanMetadata extracts display metadata from a scan report.
func scanMetadata(r *model.ScanReport) ScanMetadata {
	return ScanMetadata{
		SessionID:     r.SessionID,
		DateScanned:   r.DateScanned,
		Backend:       r.Backend,
		Fingerprint:   r.Fingerprint,
		DetectedCount: r.DetectedCount(),
		Score:         r.UniquenessScore,
	}
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Println("Scan Comparison")
	fmt.Println(strings.Repeat("=", 60))

	if result.FingerprintChanged {
		fmt.Println("\nFingerprint: CHANGED")
	} else {
		fmt.Println("\nFingerprint: identical")
	}

	fmt.Printf("\nPrevious scan: %s  (%s, %s)\n",
		shortSessionID(result.PreviousScan.SessionID),
		result.PreviousScan.DateScanned.Format("2006-01-02 15:04:05"),
		result.PreviousScan.Backend)
	fmt.Printf("Current scan:  %s  (%s, %s)\n",
		shortSessionID(result.CurrentScan.SessionID),
		result.CurrentScan.DateScanned.Format("2006-01-02 15:04:05"),
		result.CurrentScan.Backend)

	fmt.Println("\nFont Profile:")
	fmt.Printf("  %-12s  %-10s  %-10s  %-8s\n", "Metric", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-12s  %-10d  %-10d  %-8s\n", "Detected",
		result.PreviousScan.DetectedCount, result.CurrentScan.DetectedCount,
		formatDelta(result.CurrentScan.DetectedCount-result.PreviousScan.DetectedCount))
	fmt.Printf("  %-12s  %-10d  %-10d  %-8s\n", "Score",
		result.PreviousScan.Score, result.CurrentScan.Score,
		formatDelta(result.ScoreDelta))

	if len(result.AddedFonts) > 0 {
		fmt.Printf("\nAppeared (%d):\n", len(result.AddedFonts))
		for _, f := range result.AddedFonts {
			fmt.Printf("  [+] %s\n", f)
		}
	}

	if len(result.RemovedFonts) > 0 {
		fmt.Printf("\nDisappeared (%d):\n", len(result.RemovedFonts))
		for _, f := range result.RemovedFonts {
			fmt.Printf("  [-] %s\n", f)
		}
	}

	fmt.Printf("\nUnchanged: %d fonts\n", result.UnchangedCount)

	return nil
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
