package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/database"
	"github.com/glyphprint/glyphprint/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List scans saved with --save",
		Long: `History lists scan results previously saved to the local database.

Only scans run with 'glyphprint scan --save' appear here; nothing is
stored by default. The database lives in the XDG data directory.

Examples:
  # List the most recent saved scans
  glyphprint history

  # Show the full report of a saved scan (session ID prefix is enough)
  glyphprint history --show 550e8400

  # Delete a saved scan
  glyphprint history --delete 550e8400-e29b-41d4-a716-446655440000`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultHistoryLimit,
		"Maximum number of scans to list (0 lists all)")
	cmd.Flags().String("show", "",
		"Show the full report for the scan with this session ID (or unique prefix)")
	cmd.Flags().String("delete", "",
		"Delete the saved scan with this exact session ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if sessionID, err := cmd.Flags().GetString("delete"); err != nil {
		return err
	} else if sessionID != "" {
		return deleteHistoryScan(ctx, db, sessionID)
	}

	if sessionID, err := cmd.Flags().GetString("show"); err != nil {
		return err
	} else if sessionID != "" {
		return showHistoryScan(ctx, db, sessionID)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return listHistory(ctx, db, limit)
}

// listHistory prints a table of saved scans.
func listHistory(ctx context.Context, db *database.HistoryDB, limit int) error {
	scans, err := db.ListScans(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}

	if len(scans) == 0 {
		fmt.Println("No saved scans found.")
		fmt.Println("\nUse 'glyphprint scan --save' to save a scan result.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Session", "Date", "Backend", "Detected", "Fingerprint", "Score"})

	for _, s := range scans {
		fp := s.Fingerprint
		if s.Degraded {
			fp += " (degraded)"
		}
		t.AppendRow(table.Row{
			shortSessionID(s.SessionID),
			s.DateScanned.Format("2006-01-02 15:04"),
			s.Backend,
			fmt.Sprintf("%d/%d", s.DetectedCount, s.CorpusSize),
			fp,
			s.Score,
		})
	}

	t.Render()

	fmt.Println("\nUse 'glyphprint history --show <session>' for the full report.")
	fmt.Println("Use 'glyphprint compare' to diff two saved scans.")

	return nil
}

// shortSessionID returns the leading 8 characters of a session ID for
// display. IDs are UUIDs today, but rows edited by hand may be shorter.
func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// showHistoryScan prints the full report of one saved scan.
func showHistoryScan(ctx context.Context, db *database.HistoryDB, sessionID string) error {
	scan, err := db.GetScan(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load scan: %w", err)
	}
	if scan == nil {
		return fmt.Errorf("no saved scan matches %q", sessionID)
	}

	_, err = report.NewSimpleWriter(os.Stdout).Write(scan)
	return err
}

// deleteHistoryScan removes one saved scan.
func deleteHistoryScan(ctx context.Context, db *database.HistoryDB, sessionID string) error {
	deleted, err := db.DeleteScan(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	if !deleted {
		return fmt.Errorf("no saved scan with session ID %q (the full ID is required)", sessionID)
	}

	fmt.Printf("Deleted scan %s\n", sessionID)
	return nil
}
