package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/glyphprint/glyphprint/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showFonts controls whether the full detected-font list is printed.
	showFonts bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithFontList configures the writer to print every detected font,
// not just the count.
func WithFontList(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showFonts = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showFonts:  true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFonts(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        GLYPHPRINT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Session:       %s\n", report.SessionID))
	sb.WriteString(fmt.Sprintf("Scan Date:     %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	if report.Backend != "" {
		sb.WriteString(fmt.Sprintf("Backend:       %s\n", report.Backend))
	}
	sb.WriteString(fmt.Sprintf("Fonts Probed:  %d of %d\n", report.TestedFonts, report.CorpusSize))

	switch {
	case report.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.ErrorMessage))
	case report.Completed:
		sb.WriteString("Status:        Complete\n")
	default:
		sb.WriteString("Status:        Incomplete (partial results)\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the fingerprint and uniqueness section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINGERPRINT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fp := report.Fingerprint
	if fp == "" {
		fp = "(not computed)"
	}
	sb.WriteString(fmt.Sprintf("  Fingerprint:      %s\n", fp))
	if report.DegradedHash {
		sb.WriteString("  Hash Quality:     DEGRADED (non-cryptographic fallback)\n")
	}
	sb.WriteString(fmt.Sprintf("  Detected Fonts:   %d\n", report.DetectedCount()))
	sb.WriteString(fmt.Sprintf("  Uniqueness Score: %d/99 (%s)\n", report.UniquenessScore, report.Rarity()))
	if report.Elapsed > 0 {
		sb.WriteString(fmt.Sprintf("  Elapsed:          %s\n", report.Elapsed))
	}
	sb.WriteString("\n")
}

// writeFonts writes the detected font list.
func (w *SimpleWriter) writeFonts(sb *strings.Builder, report *model.ScanReport) {
	if !w.showFonts {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("DETECTED FONTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.DetectedCount() == 0 {
		sb.WriteString("  No fonts detected\n")
	} else {
		for _, font := range report.DetectedFonts {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", font))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by glyphprint\n")
	sb.WriteString("https://github.com/glyphprint/glyphprint\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
