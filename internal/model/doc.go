// Package model defines the data structures shared across the scanner.
//
// The central type is ScanReport, which accumulates the result of a single
// font-detection scan: the detected font list, the derived fingerprint, and
// the uniqueness score. Report writers and the history database consume
// this type; the engine and pipeline steps populate it.
//
// Design decision: We keep data structures separate from the engine and
// report packages so that output formatting and persistence can evolve
// without touching the scanning logic.
package model
