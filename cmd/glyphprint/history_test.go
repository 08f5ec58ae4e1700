package main

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/database"
	"github.com/glyphprint/glyphprint/internal/model"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has limit flag with default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
		if flag.DefValue != strconv.Itoa(config.DefaultHistoryLimit) {
			t.Errorf("expected default %d, got %q", config.DefaultHistoryLimit, flag.DefValue)
		}
	})

	t.Run("has show flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("show") == nil {
			t.Error("expected show flag")
		}
	})

	t.Run("has delete flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("delete") == nil {
			t.Error("expected delete flag")
		}
	})
}

// TestShortSessionID tests session ID truncation for display.
func TestShortSessionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{id: "550e8400-e29b-41d4-a716-446655440000", want: "550e8400"},
		{id: "exactly8", want: "exactly8"},
		{id: "abc", want: "abc"},
		{id: "", want: ""},
	}

	for _, tt := range tests {
		if got := shortSessionID(tt.id); got != tt.want {
			t.Errorf("shortSessionID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

// TestDeleteHistoryScan tests deletion against a temporary database.
func TestDeleteHistoryScan(t *testing.T) {
	t.Parallel()

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	ctx := context.Background()

	r := model.NewScanReport(150)
	r.Backend = "table"
	r.DateScanned = time.Now()
	r.AddDetectedFont("Arial")
	r.Fingerprint = "a3f2b8c91e04d756"
	r.UniquenessScore = 10
	r.Completed = true

	if err := db.SaveScanReport(ctx, r); err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	t.Run("unknown session is an error", func(t *testing.T) {
		if err := deleteHistoryScan(ctx, db, "does-not-exist"); err == nil {
			t.Error("expected error for unknown session ID")
		}
	})

	t.Run("full session ID deletes", func(t *testing.T) {
		if err := deleteHistoryScan(ctx, db, r.SessionID); err != nil {
			t.Errorf("deleteHistoryScan() error = %v", err)
		}

		scans, err := db.ListScans(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(scans) != 0 {
			t.Errorf("expected empty history after delete, got %d scans", len(scans))
		}
	})
}
