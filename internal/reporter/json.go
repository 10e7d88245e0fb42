package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/siftlint/sift/internal/rules"
)

// JSONOutput is the top-level structure for JSON output.
type JSONOutput struct {
	// Files contains results grouped by file.
	Files []FileResult `json:"files"`
	// Summary contains aggregate statistics.
	Summary Summary `json:"summary"`
	// FilesScanned is the total number of files scanned.
	FilesScanned int `json:"files_scanned"`
	// RulesEnabled is the total number of rules that were active.
	RulesEnabled int `json:"rules_enabled"`
	// FixesApplied is the number of fixes written by --fix.
	FixesApplied int `json:"fixes_applied,omitempty"`
}

// FileResult contains the linting results for a single file.
type FileResult struct {
	File        string             `json:"file"`
	Diagnostics []rules.Diagnostic `json:"diagnostics"`
}

// Summary contains aggregate statistics about diagnostics.
type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Style    int `json:"style"`
	Files    int `json:"files"`
}

// JSONReporter formats diagnostics as JSON output.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(diags []rules.Diagnostic, _ map[string][]byte, metadata ReportMetadata) error {
	// Group diagnostics by file in deterministic order, with paths
	// normalized to forward slashes for cross-platform consistency.
	byFile := make(map[string][]rules.Diagnostic)
	filesOrder := make([]string, 0)

	for _, d := range rules.SortDiagnostics(diags) {
		d.File = filepath.ToSlash(d.File)
		if _, exists := byFile[d.File]; !exists {
			filesOrder = append(filesOrder, d.File)
		}
		byFile[d.File] = append(byFile[d.File], d)
	}

	output := JSONOutput{
		Files:        make([]FileResult, 0, len(filesOrder)),
		Summary:      calculateSummary(diags, len(filesOrder)),
		FilesScanned: metadata.FilesScanned,
		RulesEnabled: metadata.RulesEnabled,
		FixesApplied: metadata.FixesApplied,
	}

	for _, file := range filesOrder {
		output.Files = append(output.Files, FileResult{
			File:        file,
			Diagnostics: byFile[file],
		})
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// calculateSummary computes aggregate statistics from diagnostics.
func calculateSummary(diags []rules.Diagnostic, fileCount int) Summary {
	summary := Summary{
		Total: len(diags),
		Files: fileCount,
	}

	for _, d := range diags {
		switch d.Severity {
		case rules.SeverityError:
			summary.Errors++
		case rules.SeverityWarning:
			summary.Warnings++
		case rules.SeverityInfo:
			summary.Info++
		case rules.SeverityStyle:
			summary.Style++
		}
	}

	return summary
}
