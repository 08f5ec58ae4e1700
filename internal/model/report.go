package model

import (
	"time"

	"github.com/google/uuid"
)

// ScanReport is the result of a single font-detection scan.
// It is created empty before the scan starts and populated progressively
// by the pipeline steps: detection fills DetectedFonts, hashing fills
// Fingerprint, scoring fills UniquenessScore.
//
// Design decision: We use a single struct rather than separate
// per-step results because the steps build on each other (the hasher
// reads DetectedFonts, the scorer reads their count) and a single
// struct serializes cleanly for the JSON writer and the history store.
type ScanReport struct {
	// SessionID uniquely identifies this scan session.
	SessionID string `json:"session_id"`

	// DateScanned is the timestamp when the scan was started.
	DateScanned time.Time `json:"date_scanned"`

	// Backend names the measurement backend used (e.g. "table", "system").
	Backend string `json:"backend,omitempty"`

	// CorpusSize is the total number of fonts in the probed corpus.
	CorpusSize int `json:"corpus_size"`

	// TestedFonts is the number of fonts actually tested.
	// Equals CorpusSize when the scan ran to completion.
	TestedFonts int `json:"tested_fonts"`

	// DetectedFonts lists the fonts confirmed present, in detection order
	// (corpus iteration order filtered to hits). No duplicates.
	DetectedFonts []string `json:"detected_fonts"`

	// Fingerprint is the derived identifier: 16 lowercase hex characters
	// computed over the sorted detected-font list. Empty until the
	// fingerprint step has run.
	Fingerprint string `json:"fingerprint,omitempty"`

	// UniquenessScore estimates how distinguishing the detected-font
	// count is, in [5, 99]. Only meaningful when Completed is true.
	UniquenessScore int `json:"uniqueness_score"`

	// Completed is true once the full pipeline has finished and both
	// Fingerprint and UniquenessScore are valid.
	Completed bool `json:"completed"`

	// DegradedHash is true when the fingerprint was produced by the weak
	// fallback hash because the cryptographic digest was unavailable.
	DegradedHash bool `json:"degraded_hash,omitempty"`

	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration `json:"elapsed_ns"`

	// PerformedSteps lists the pipeline steps that were executed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains any error that occurred during scanning.
	// Only set if the scan failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewScanReport creates an empty report for a scan over a corpus of the
// given size. A fresh session ID is assigned.
func NewScanReport(corpusSize int) *ScanReport {
	return &ScanReport{
		SessionID:     uuid.NewString(),
		DateScanned:   time.Now(),
		CorpusSize:    corpusSize,
		DetectedFonts: make([]string, 0),
	}
}

// AddDetectedFont appends a font to the detected list, preserving
// insertion order. Returns false if the font was already recorded,
// in which case the list is unchanged.
func (r *ScanReport) AddDetectedFont(name string) bool {
	if r.HasFont(name) {
		return false
	}
	r.DetectedFonts = append(r.DetectedFonts, name)
	return true
}

// HasFont reports whether the font is already in the detected list.
func (r *ScanReport) HasFont(name string) bool {
	for _, f := range r.DetectedFonts {
		if f == name {
			return true
		}
	}
	return false
}

// DetectedCount returns the number of detected fonts.
func (r *ScanReport) DetectedCount() int {
	return len(r.DetectedFonts)
}

// Rarity returns the rarity tier corresponding to the uniqueness score.
// Only meaningful once the scan is completed.
func (r *ScanReport) Rarity() Rarity {
	return RarityForScore(r.UniquenessScore)
}
