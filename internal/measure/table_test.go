package measure

import (
	"os"
	"path/filepath"
	"testing"
)

const probe = "AbCxYz0189.,!?"

// TestTableMeasure tests width resolution against the table.
func TestTableMeasure(t *testing.T) {
	t.Parallel()

	t.Run("known family diverges from monospace reference", func(t *testing.T) {
		t.Parallel()

		tbl := NewTable(map[string]float64{"Arial": 0.55})

		ref, err := tbl.Measure(FontStack{Monospace}, 72, probe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cand, err := tbl.Measure(FontStack{"Arial", Monospace}, 72, probe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cand == ref {
			t.Errorf("expected Arial width to differ from reference, both %f", cand)
		}
	})

	t.Run("unknown family collapses to the fallback", func(t *testing.T) {
		t.Parallel()

		tbl := NewTable(map[string]float64{"Arial": 0.55})

		ref, _ := tbl.Measure(FontStack{Monospace}, 72, probe)
		cand, _ := tbl.Measure(FontStack{"ZzzUnlikelyFontXYZ", Monospace}, 72, probe)

		if cand != ref {
			t.Errorf("expected unknown family to measure as reference: got %f, expected %f", cand, ref)
		}
	})

	t.Run("lookup is case and whitespace insensitive", func(t *testing.T) {
		t.Parallel()

		tbl := NewTable(map[string]float64{"Courier  New": 0.62})

		a, _ := tbl.Measure(FontStack{"courier new"}, 10, probe)
		b, _ := tbl.Measure(FontStack{"Courier New"}, 10, probe)

		if a != b {
			t.Errorf("expected normalized lookups to agree: %f vs %f", a, b)
		}
		ref, _ := tbl.Measure(FontStack{Monospace}, 10, probe)
		if a == ref {
			t.Error("expected Courier New to resolve, it fell back to the reference")
		}
	})

	t.Run("width scales with size and text length", func(t *testing.T) {
		t.Parallel()

		tbl := NewDefaultTable()

		small, _ := tbl.Measure(FontStack{"Arial"}, 10, "ab")
		large, _ := tbl.Measure(FontStack{"Arial"}, 20, "ab")
		longer, _ := tbl.Measure(FontStack{"Arial"}, 10, "abcd")

		if large != small*2 {
			t.Errorf("doubling size should double width: %f vs %f", small, large)
		}
		if longer != small*2 {
			t.Errorf("doubling text should double width: %f vs %f", small, longer)
		}
	})

	t.Run("measurement is deterministic", func(t *testing.T) {
		t.Parallel()

		tbl := NewDefaultTable()

		a, _ := tbl.Measure(FontStack{"Verdana", Monospace}, 72, probe)
		b, _ := tbl.Measure(FontStack{"Verdana", Monospace}, 72, probe)

		if a != b {
			t.Errorf("repeated measurements differ: %f vs %f", a, b)
		}
	})
}

// TestDefaultTable sanity-checks the built-in metrics.
func TestDefaultTable(t *testing.T) {
	t.Parallel()

	tbl := NewDefaultTable()

	if tbl.Families() == 0 {
		t.Fatal("expected built-in families")
	}

	// Every built-in family must be distinguishable from the reference,
	// otherwise it could never be detected.
	ref, _ := tbl.Measure(FontStack{Monospace}, 72, probe)
	for family := range defaultWidths {
		w, err := tbl.Measure(FontStack{family, Monospace}, 72, probe)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", family, err)
		}
		if w == ref {
			t.Errorf("family %q measures identical to the monospace reference", family)
		}
	}
}

// TestLoadTable tests YAML width-table loading.
func TestLoadTable(t *testing.T) {
	t.Parallel()

	t.Run("loads families from YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "widths.yaml")
		content := "widths:\n  Arial: 0.55\n  \"Courier New\": 0.62\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		tbl, err := LoadTable(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tbl.Families() != 2 {
			t.Errorf("expected 2 families, got %d", tbl.Families())
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("rejects empty table", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.yaml")
		if err := os.WriteFile(path, []byte("widths: {}\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadTable(path); err == nil {
			t.Error("expected error for empty table")
		}
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("widths: [not, a, map"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadTable(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}
