package fingerprint

import "math"

// Score bounds and curve parameters.
const (
	// MaxCountedFonts caps the detected-font count fed into the curve.
	// Counts beyond this add no further information: an installation with
	// hundreds of fonts is already firmly at the ceiling.
	MaxCountedFonts = 200

	// scoreDivisor normalizes the clamped count. 100 detected fonts sit
	// at the curve's nominal top; clamped counts above that land in the
	// ceiling once the final clamp is applied.
	scoreDivisor = 100.0

	// MinScore is the floor. Even an empty detection result gets a
	// non-degenerate score rather than 0.
	MinScore = 5

	// MaxScore is the ceiling. A maximal detection count never reads as
	// a perfect 100, which would overstate the heuristic's precision.
	MaxScore = 99
)

// Score maps a detected-font count to a uniqueness score in
// [MinScore, MaxScore]. The square-root curve compresses the high end:
// each extra font on a font-rich installation contributes less than on a
// sparse one. Score is monotonically non-decreasing in count.
func Score(detectedCount int) int {
	if detectedCount < 0 {
		detectedCount = 0
	}
	if detectedCount > MaxCountedFonts {
		detectedCount = MaxCountedFonts
	}

	raw := int(math.Round(100 * math.Sqrt(float64(detectedCount)/scoreDivisor)))

	if raw < MinScore {
		return MinScore
	}
	if raw > MaxScore {
		return MaxScore
	}
	return raw
}
