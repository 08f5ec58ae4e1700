package corpus

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Corpus is an ordered, deduplicated, immutable collection of font names.
//
// Design decision: The corpus is frozen at construction. The engine's
// detection order, the progress totals, and the scan's reproducibility
// all depend on the list never changing underneath a scan, so no mutation
// methods exist; extending the corpus means building a new one.
type Corpus struct {
	// fonts holds the names in assembly order.
	fonts []string
}

// New assembles a corpus from the given source lists in order.
// Duplicates are dropped, keeping the first occurrence: two names are
// considered equal when they agree after Unicode NFC normalization, case
// folding, and whitespace collapsing.
func New(sources ...[]string) *Corpus {
	seen := make(map[string]struct{})
	fonts := make([]string, 0)

	for _, source := range sources {
		for _, name := range source {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := canonicalKey(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fonts = append(fonts, name)
		}
	}

	return &Corpus{fonts: fonts}
}

// Default assembles the built-in corpus from all bundled source lists.
func Default() *Corpus {
	return New(webSafeFonts, windowsFonts, macOSFonts, linuxFonts, extendedFonts)
}

// Len returns the number of fonts in the corpus.
func (c *Corpus) Len() int {
	return len(c.fonts)
}

// At returns the font name at position i.
func (c *Corpus) At(i int) string {
	return c.fonts[i]
}

// Fonts returns a copy of the full font list in corpus order.
func (c *Corpus) Fonts() []string {
	out := make([]string, len(c.fonts))
	copy(out, c.fonts)
	return out
}

// Batch returns a copy of the fonts in the half-open range [start, end),
// clipped to the corpus bounds. This is the unit the scan loop processes
// between yields.
func (c *Corpus) Batch(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(c.fonts) {
		end = len(c.fonts)
	}
	if start >= end {
		return nil
	}
	out := make([]string, end-start)
	copy(out, c.fonts[start:end])
	return out
}

// Contains reports whether the corpus holds the font, compared under the
// same canonicalization used for dedup.
func (c *Corpus) Contains(name string) bool {
	key := canonicalKey(name)
	for _, f := range c.fonts {
		if canonicalKey(f) == key {
			return true
		}
	}
	return false
}

// canonicalKey produces the dedup key for a font name: NFC-normalized,
// case-folded, with whitespace runs collapsed.
func canonicalKey(name string) string {
	folded := cases.Fold().String(norm.NFC.String(name))
	return strings.Join(strings.Fields(folded), " ")
}
