package measure

import (
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeFontFiles creates empty files with the given names in a temp dir
// and returns the directory.
func writeFontFiles(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSystemScan tests family discovery from font directories.
func TestSystemScan(t *testing.T) {
	t.Parallel()

	t.Run("collects families from font files", func(t *testing.T) {
		t.Parallel()

		dir := writeFontFiles(t, "DejaVuSans.ttf", "DejaVuSans-Bold.ttf", "Monaco.otf", "notes.txt")

		s := NewSystem(WithFontDirs([]string{dir}), WithSystemLogger(testLogger()))

		// Style variants collapse onto the family, non-fonts are ignored.
		if s.Families() != 2 {
			t.Errorf("expected 2 families, got %d", s.Families())
		}
	})

	t.Run("tolerates missing directories", func(t *testing.T) {
		t.Parallel()

		s := NewSystem(
			WithFontDirs([]string{filepath.Join(t.TempDir(), "does-not-exist")}),
			WithSystemLogger(testLogger()),
		)

		if s.Families() != 0 {
			t.Errorf("expected 0 families, got %d", s.Families())
		}
	})
}

// TestSystemMeasure tests the availability-by-width contract.
func TestSystemMeasure(t *testing.T) {
	t.Parallel()

	dir := writeFontFiles(t, "DejaVuSans.ttf", "LiberationMono-Regular.ttf")
	s := NewSystem(WithFontDirs([]string{dir}), WithSystemLogger(testLogger()))

	ref, err := s.Measure(FontStack{Monospace}, 72, probe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("installed family diverges from reference", func(t *testing.T) {
		t.Parallel()

		w, err := s.Measure(FontStack{"DejaVu Sans", Monospace}, 72, probe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w == ref {
			t.Error("expected installed family to measure differently from the reference")
		}
	})

	t.Run("style-suffixed file resolves its family", func(t *testing.T) {
		t.Parallel()

		w, _ := s.Measure(FontStack{"Liberation Mono", Monospace}, 72, probe)
		if w == ref {
			t.Error("expected Liberation Mono to be detected via its Regular file")
		}
	})

	t.Run("absent family collapses to reference", func(t *testing.T) {
		t.Parallel()

		w, _ := s.Measure(FontStack{"ZzzUnlikelyFontXYZ", Monospace}, 72, probe)
		if w != ref {
			t.Errorf("expected absent family to measure as reference: got %f, expected %f", w, ref)
		}
	})

	t.Run("synthetic factor is stable across calls", func(t *testing.T) {
		t.Parallel()

		a, _ := s.Measure(FontStack{"DejaVu Sans", Monospace}, 72, probe)
		b, _ := s.Measure(FontStack{"DejaVu Sans", Monospace}, 72, probe)
		if a != b {
			t.Errorf("repeated measurements differ: %f vs %f", a, b)
		}
	})
}

// TestFamilyFactorDivergesFromReference tests that every installed
// family gets a width factor measurably apart from the monospace
// reference, across the whole residue range of the name hash. Hashed
// factors that land within float rounding noise of the reference would
// otherwise make an installed family measure as absent.
func TestFamilyFactorDivergesFromReference(t *testing.T) {
	t.Parallel()

	seen := make(map[uint32]bool)
	for i := 0; i < 2000; i++ {
		name := fmt.Sprintf("Family %d", i)

		h := fnv.New32a()
		_, _ = h.Write([]byte(familyKey(name)))
		seen[h.Sum32()%40] = true

		factor := familyFactor(name)
		if diff := math.Abs(factor - monospaceFactor); diff < 1e-3 {
			t.Errorf("familyFactor(%q) = %v, within %v of reference %v",
				name, factor, diff, monospaceFactor)
		}
		if factor < 0.40 || factor > 0.85 {
			t.Errorf("familyFactor(%q) = %v, outside expected band", name, factor)
		}
	}

	if len(seen) != 40 {
		t.Fatalf("generated names cover %d of 40 hash residues", len(seen))
	}
}

// TestFamilyKeyFromFile tests file-name-to-family-key derivation.
func TestFamilyKeyFromFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{"DejaVuSans.ttf", "dejavusans"},
		{"DejaVuSans-Bold.ttf", "dejavusans"},
		{"DejaVuSans-BoldItalic.ttf", "dejavusans"},
		{"Liberation_Mono-Regular.ttf", "liberationmono"},
		{"NotoSans-ExtraLight.otf", "notosans"},
		{"arial.ttf", "arial"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			if got := familyKeyFromFile(tt.file); got != tt.want {
				t.Errorf("familyKeyFromFile(%q) = %q, expected %q", tt.file, got, tt.want)
			}
		})
	}
}
