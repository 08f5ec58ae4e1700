package measure

import "strings"

// FontStack is an ordered list of font families. Measurement resolves the
// first family the backend knows; later entries act as fallbacks, the way
// a font-family list degrades in a rendering environment.
type FontStack []string

// Generic family names understood by every backend.
const (
	// Monospace is the generic monospaced family. It always resolves,
	// which makes it the natural reference for width comparisons.
	Monospace = "monospace"

	// Serif and SansSerif are generic families with fixed metrics.
	Serif     = "serif"
	SansSerif = "sans-serif"
)

// Width factors for the generic families, in advance width per rune per
// size unit. Chosen to sit apart from each other so generic families are
// mutually distinguishable.
const (
	monospaceFactor = 0.60
	serifFactor     = 0.50
	sansSerifFactor = 0.52
)

// Measurer is the text-measurement primitive.
//
// Implementations must be deterministic per call: measuring the same
// stack, size, and text twice yields the same width. The engine relies
// on this to compare a candidate font against a reference.
type Measurer interface {
	// Measure returns the rendered advance width of text drawn with the
	// given font stack at the given size. An error means no measurement
	// surface is available at all; callers are expected to fail closed.
	Measure(stack FontStack, size float64, text string) (float64, error)

	// Name identifies the backend for logging and reports.
	Name() string
}

// Func adapts a plain function to the Measurer interface.
// This is primarily useful in tests.
type Func func(stack FontStack, size float64, text string) (float64, error)

// Measure calls the wrapped function.
func (f Func) Measure(stack FontStack, size float64, text string) (float64, error) {
	return f(stack, size, text)
}

// Name returns the fixed backend name "func".
func (Func) Name() string { return "func" }

// normalizeFamily canonicalizes a family name for table lookup:
// lowercase with runs of whitespace collapsed to single spaces.
// "DejaVu  Sans" and "dejavu sans" resolve to the same entry.
func normalizeFamily(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// genericFactor returns the width factor for a generic family name,
// or 0 and false if the name is not generic.
func genericFactor(family string) (float64, bool) {
	switch normalizeFamily(family) {
	case Monospace:
		return monospaceFactor, true
	case Serif:
		return serifFactor, true
	case SansSerif:
		return sansSerifFactor, true
	}
	return 0, false
}
