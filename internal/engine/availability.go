package engine

import (
	"log/slog"
	"math"

	"github.com/glyphprint/glyphprint/internal/measure"
)

// Probe parameters.
const (
	// probeText mixes cases, digits, and punctuation for broad glyph
	// coverage, so fonts with unusual metrics in any of those ranges
	// still diverge from the reference.
	probeText = "AbCdWmXyZ ilI1 O0 5678 .,:;!?@#&"

	// probeSize is deliberately large: width differences scale with
	// size, keeping the comparison well clear of rounding noise.
	probeSize = 72.0

	// widthEpsilon is the divergence threshold. Widths closer than this
	// are treated as identical.
	widthEpsilon = 1e-6
)

// Prober runs the single-font availability test.
//
// The test renders the probe text twice: once with the bare monospace
// reference, once with the candidate stacked on that same reference.
// If the candidate is installed, its metrics differ from the reference
// and the two widths diverge; if not, the stack silently substitutes the
// reference and the widths match. Comparing against a single generic
// monospaced baseline avoids false negatives from candidates that happen
// to share metrics with one of several fallback families.
type Prober struct {
	// measurer is the text-measurement primitive. May be nil, in which
	// case every probe fails closed.
	measurer measure.Measurer

	// logger for structured logging.
	logger *slog.Logger
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProberLogger sets a custom logger for the prober.
func WithProberLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) {
		p.logger = logger
	}
}

// NewProber creates a Prober backed by the given measurement primitive.
func NewProber(m measure.Measurer, opts ...ProberOption) *Prober {
	p := &Prober{
		measurer: m,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Available reports whether the font is usable by the measurement
// environment. A missing or failing measurement primitive reports the
// font as unavailable rather than propagating an error: one unmeasurable
// font must not abort a scan.
func (p *Prober) Available(font string) bool {
	if p.measurer == nil {
		return false
	}

	ref, err := p.measurer.Measure(measure.FontStack{measure.Monospace}, probeSize, probeText)
	if err != nil {
		p.logger.Debug("reference measurement failed", "font", font, "error", err)
		return false
	}

	cand, err := p.measurer.Measure(measure.FontStack{font, measure.Monospace}, probeSize, probeText)
	if err != nil {
		p.logger.Debug("candidate measurement failed", "font", font, "error", err)
		return false
	}

	return math.Abs(cand-ref) > widthEpsilon
}
