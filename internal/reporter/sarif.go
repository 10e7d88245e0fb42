package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/siftlint/sift/internal/rules"
)

// Default SARIF tool information.
const (
	defaultToolName = "sift"
	defaultToolURI  = "https://github.com/siftlint/sift"
)

// SARIFReporter formats diagnostics as SARIF (Static Analysis Results
// Interchange Format). SARIF is a standard format for static analysis
// tools, widely supported by CI/CD systems including GitHub Code
// Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(diags []rules.Diagnostic, _ map[string][]byte, _ ReportMetadata) error {
	// v2.1.0 for maximum compatibility
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	// Collect unique rule codes and files
	ruleSet := make(map[string]struct{})
	fileSet := make(map[string]struct{})

	for _, d := range diags {
		ruleSet[d.Code] = struct{}{}
		fileSet[filepath.ToSlash(d.File)] = struct{}{}
	}

	ruleCodes := make([]string, 0, len(ruleSet))
	for code := range ruleSet {
		ruleCodes = append(ruleCodes, code)
	}
	sort.Strings(ruleCodes)

	for _, code := range ruleCodes {
		rule := run.AddRule(code)
		if m, ok := rules.Lookup(code); ok {
			if m.Summary != "" {
				rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(m.Summary))
			}
			if m.DocURL != "" {
				rule.WithHelpURI(m.DocURL)
			}
		}
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		run.AddDistinctArtifact(file)
	}

	for _, d := range rules.SortDiagnostics(diags) {
		filePath := filepath.ToSlash(d.File)

		result := sarif.NewRuleResult(d.Code).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(severityToSARIFLevel(d.Severity))

		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath))

		if !d.Location.IsZero() {
			region := sarif.NewRegion().
				WithStartLine(d.Location.Start.Row).
				WithStartColumn(d.Location.Start.Col + 1) // SARIF uses 1-based columns

			if d.Location.End.Row > 0 {
				region.WithEndLine(d.Location.End.Row).
					WithEndColumn(d.Location.End.Col + 1)
			}

			if d.Snippet != "" {
				region.WithSnippet(sarif.NewArtifactContent().WithText(d.Snippet))
			}

			physicalLocation.WithRegion(region)
		}

		result.WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(physicalLocation),
		})

		run.AddResult(result)
	}

	report.AddRun(run)

	// Pretty formatting for readability
	return report.PrettyWrite(r.writer)
}

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// severityToSARIFLevel maps our Severity to SARIF levels.
// SARIF uses: "error", "warning", "note", "none"
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return sarifLevelError
	case rules.SeverityWarning:
		return sarifLevelWarning
	case rules.SeverityInfo, rules.SeverityStyle:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
