package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/glyphprint/glyphprint/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeFingerprint(md, report)
	w.writeFonts(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Glyphprint Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + report.SessionID + "`"},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Backend", report.Backend},
			{"Fonts Probed", strconv.Itoa(report.TestedFonts) + " of " + strconv.Itoa(report.CorpusSize)},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status text based on report state.
func (w *MarkdownWriter) statusText(report *model.ScanReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if !report.Completed {
		return "⚠️ Incomplete (partial results)"
	}
	return "✅ Complete"
}

// writeFingerprint writes the fingerprint and uniqueness section.
func (w *MarkdownWriter) writeFingerprint(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Fingerprint")
	md.PlainText("")

	fp := report.Fingerprint
	if fp == "" {
		fp = "(not computed)"
	} else {
		fp = "`" + fp + "`"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Fingerprint", fp},
			{"Detected Fonts", strconv.Itoa(report.DetectedCount())},
			{"Uniqueness Score", strconv.Itoa(report.UniquenessScore) + "/99"},
			{"Rarity", report.Rarity().String()},
		},
	})
	md.PlainText("")

	if report.TestedFonts > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of detected vs absent fonts.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.ScanReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Font Detection"),
		piechart.WithShowData(true),
	)

	detected := report.DetectedCount()
	absent := report.TestedFonts - detected
	if detected > 0 {
		chart.LabelAndIntValue("Detected", uint64(detected))
	}
	if absent > 0 {
		chart.LabelAndIntValue("Absent", uint64(absent))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the rarity tier.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.ScanReport) {
	if report.DegradedHash {
		md.Warning("Fingerprint was produced by the non-cryptographic fallback hash; collision resistance is weak.")
		md.PlainText("")
	}

	switch report.Rarity() {
	case model.RarityRare:
		md.Cautionf(
			"This font profile is rare (score %d). It identifies this device with high confidence.",
			report.UniquenessScore,
		)
	case model.RarityDistinctive:
		md.Importantf(
			"This font profile is distinctive (score %d). Combined with other signals it can single out this device.",
			report.UniquenessScore,
		)
	case model.RarityUncommon:
		md.Note("This font profile is uncommon (score " + strconv.Itoa(report.UniquenessScore) + ").")
	default:
		md.Tip("This font profile is common and contributes little identifying information on its own.")
	}
	md.PlainText("")
}

// writeFonts writes the detected font list.
func (w *MarkdownWriter) writeFonts(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Detected Fonts")
	md.PlainText("")

	if report.DetectedCount() == 0 {
		md.PlainText("No fonts detected.")
		md.PlainText("")
		return
	}

	md.BulletList(report.DetectedFonts...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [glyphprint](https://github.com/glyphprint/glyphprint)*")
}
