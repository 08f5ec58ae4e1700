package main

import (
	"strconv"
	"testing"

	"github.com/glyphprint/glyphprint/internal/config"
)

// TestNewVerifyCmd tests the verify command creation.
func TestNewVerifyCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVerifyCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "verify" {
			t.Errorf("expected use 'verify', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		flags := map[string]string{
			"backend":     "B",
			"width-table": "w",
			"corpus":      "C",
			"runs":        "r",
			"concurrency": "n",
		}
		for name, shorthand := range flags {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != shorthand {
				t.Errorf("flag %s: expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
			}
		}
	})

	t.Run("runs defaults to verify runs", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("runs")
		if flag == nil {
			t.Fatal("expected runs flag")
		}
		if flag.DefValue != strconv.Itoa(config.DefaultVerifyRuns) {
			t.Errorf("expected default %d, got %q", config.DefaultVerifyRuns, flag.DefValue)
		}
	})

	t.Run("concurrency defaults to one", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.DefValue != "1" {
			t.Errorf("expected default '1', got %q", flag.DefValue)
		}
	})
}
