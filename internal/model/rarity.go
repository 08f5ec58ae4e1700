package model

// Rarity buckets a uniqueness score into a human-readable tier.
// The tiers make the 5-99 score range easier to interpret in reports:
// a score near the floor means the font set looks like everyone else's,
// a score near the ceiling means it is highly distinguishing.
//
// Design decision: We use iota-based constants rather than string
// constants for efficiency in comparisons and sorting. The String()
// method provides human-readable output when needed.
type Rarity int

const (
	// RarityCommon covers scores below 25: a small, widely shared font set.
	RarityCommon Rarity = iota

	// RarityUncommon covers scores 25-49: some distinguishing fonts present.
	RarityUncommon

	// RarityDistinctive covers scores 50-74: a font set that narrows the
	// device down considerably within a population.
	RarityDistinctive

	// RarityRare covers scores 75 and above: the font set is close to
	// unique within a typical population.
	RarityRare
)

// RarityForScore maps a uniqueness score to its rarity tier.
func RarityForScore(score int) Rarity {
	switch {
	case score < 25:
		return RarityCommon
	case score < 50:
		return RarityUncommon
	case score < 75:
		return RarityDistinctive
	default:
		return RarityRare
	}
}

// String returns a human-readable representation of the rarity tier.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "COMMON"
	case RarityUncommon:
		return "UNCOMMON"
	case RarityDistinctive:
		return "DISTINCTIVE"
	case RarityRare:
		return "RARE"
	default:
		return "UNKNOWN"
	}
}
