// Package engine implements the font-detection engine.
//
// The engine owns the corpus, probes each font with a width-comparison
// availability test, runs the probes in fixed-size batches with a short
// yield between batches, and finishes by deriving the fingerprint and
// uniqueness score. Progress is reported through a callback, once per
// detected font.
//
// Session state (detected fonts, fingerprint, score, scanning flag) is
// held on the engine and readable while a scan runs; Reset returns the
// engine to its post-construction state without touching the corpus.
// Only one scan may be active per engine at a time.
package engine
