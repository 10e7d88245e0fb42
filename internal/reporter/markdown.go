package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/siftlint/sift/internal/rules"
)

// MarkdownReporter formats diagnostics as concise markdown tables.
// Designed for AI agents working on Python code - token-efficient and actionable.
type MarkdownReporter struct {
	writer io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{writer: w}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(diags []rules.Diagnostic, _ map[string][]byte, _ ReportMetadata) error {
	if len(diags) == 0 {
		_, err := fmt.Fprintln(r.writer, "**No issues found**")
		return err
	}

	sorted := SortDiagnosticsBySeverity(diags)

	for i := range sorted {
		sorted[i].File = filepath.ToSlash(sorted[i].File)
	}

	fileSet := make(map[string]struct{})
	for _, d := range sorted {
		fileSet[d.File] = struct{}{}
	}
	fileCount := len(fileSet)

	if fileCount == 1 {
		var filename string
		for f := range fileSet {
			filename = f
		}
		return r.writeSingleFileTable(sorted, filename)
	}

	return r.writeMultiFileTable(sorted, fileCount)
}

// writeSingleFileTable writes a markdown table for diagnostics in a single file.
func (r *MarkdownReporter) writeSingleFileTable(sorted []rules.Diagnostic, filename string) error {
	if _, err := fmt.Fprintf(r.writer, "**%d %s** in `%s`\n\n",
		len(sorted), pluralize(len(sorted), "issue", "issues"), filename); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "| Line | Issue |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "|------|-------|"); err != nil {
		return err
	}

	for _, d := range sorted {
		if _, err := fmt.Fprintf(r.writer, "| %s | %s %s |\n",
			formatRow(d), severityEmoji(d.Severity), escapeMarkdown(d.Message)); err != nil {
			return err
		}
	}

	return nil
}

// writeMultiFileTable writes a markdown table for diagnostics across multiple files.
func (r *MarkdownReporter) writeMultiFileTable(sorted []rules.Diagnostic, fileCount int) error {
	if _, err := fmt.Fprintf(r.writer, "**%d %s** across %d files\n\n",
		len(sorted), pluralize(len(sorted), "issue", "issues"), fileCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "| File | Line | Issue |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "|------|------|-------|"); err != nil {
		return err
	}

	for _, d := range sorted {
		if _, err := fmt.Fprintf(r.writer, "| %s | %s | %s %s |\n",
			d.File, formatRow(d), severityEmoji(d.Severity), escapeMarkdown(d.Message)); err != nil {
			return err
		}
	}

	return nil
}

// formatRow returns the display string for a diagnostic's line number.
func formatRow(d rules.Diagnostic) string {
	if d.Row() > 0 {
		return strconv.Itoa(d.Row())
	}
	return "-"
}

// SortDiagnosticsBySeverity sorts diagnostics by severity (errors first),
// then by file and line. Uses stable sort to preserve original order for
// equal-priority items.
func SortDiagnosticsBySeverity(diags []rules.Diagnostic) []rules.Diagnostic {
	sorted := make([]rules.Diagnostic, len(diags))
	copy(sorted, diags)

	sort.SliceStable(sorted, func(i, j int) bool {
		return diagnosticLess(sorted[i], sorted[j])
	})

	return sorted
}

// diagnosticLess returns true if a should come before b in the sorted output.
func diagnosticLess(a, b rules.Diagnostic) bool {
	aPriority := severityPriority(a.Severity)
	bPriority := severityPriority(b.Severity)
	if aPriority != bPriority {
		return aPriority < bPriority
	}

	if a.File != b.File {
		return a.File < b.File
	}

	return a.Row() < b.Row()
}

// severityPriority returns a numeric priority for sorting (lower = more severe).
func severityPriority(s rules.Severity) int {
	switch s {
	case rules.SeverityError:
		return 0
	case rules.SeverityWarning:
		return 1
	case rules.SeverityInfo:
		return 2
	case rules.SeverityStyle:
		return 3
	default:
		return 4
	}
}

// severityEmoji returns an emoji indicator for the severity level.
func severityEmoji(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "❌"
	case rules.SeverityWarning:
		return "⚠️"
	case rules.SeverityInfo:
		return "ℹ️"
	case rules.SeverityStyle:
		return "💅"
	default:
		return "⚠️"
	}
}

// escapeMarkdown escapes special markdown characters in table cells.
func escapeMarkdown(s string) string {
	// Pipe characters break table formatting
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// pluralize returns singular or plural form based on count.
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
