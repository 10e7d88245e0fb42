package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlint/sift/internal/rules"
	_ "github.com/siftlint/sift/internal/rules/all"
	"github.com/siftlint/sift/internal/syntax"
)

func sampleDiagnostics() []rules.Diagnostic {
	return []rules.Diagnostic{
		{
			File:     "pkg/app.py",
			Code:     "E501",
			Message:  "Line too long (120 > 88 characters)",
			Location: syntax.NewRange(3, 88, 3, 120),
			Severity: rules.SeverityWarning,
		},
		{
			File:     "pkg/app.py",
			Code:     "UP007",
			Message:  "Use `X | Y` for type annotations",
			Location: syntax.NewRange(1, 3, 1, 16),
			Severity: rules.SeverityStyle,
			Snippet:  "x: Optional[int] = None",
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"sarif", FormatSARIF, false},
		{"github-actions", FormatGitHubActions, false},
		{"github", FormatGitHubActions, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestJSONReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	err := r.Report(sampleDiagnostics(), nil, ReportMetadata{FilesScanned: 4, RulesEnabled: 7})
	require.NoError(t, err)

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 4, out.FilesScanned)
	assert.Equal(t, 7, out.RulesEnabled)
	assert.Equal(t, 2, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Warnings)
	assert.Equal(t, 1, out.Summary.Style)
	assert.Equal(t, 1, out.Summary.Files)

	require.Len(t, out.Files, 1)
	assert.Equal(t, "pkg/app.py", out.Files[0].File)
	require.Len(t, out.Files[0].Diagnostics, 2)
	// Positional order within a file.
	assert.Equal(t, "UP007", out.Files[0].Diagnostics[0].Code)
	assert.Equal(t, "E501", out.Files[0].Diagnostics[1].Code)
}

func TestJSONReportEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewJSONReporter(&buf).Report(nil, nil, ReportMetadata{FilesScanned: 2})
	require.NoError(t, err)

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Empty(t, out.Files)
	assert.Zero(t, out.Summary.Total)
	assert.Equal(t, 2, out.FilesScanned)
}

func TestGitHubActionsReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewGitHubActionsReporter(&buf).Report(sampleDiagnostics(), nil, ReportMetadata{})
	require.NoError(t, err)

	want := "::notice file=pkg/app.py,line=1,col=4,title=UP007::Use `X | Y` for type annotations\n" +
		"::warning file=pkg/app.py,line=3,col=89,title=E501::Line too long (120 > 88 characters)\n"
	assert.Equal(t, want, buf.String())
}

func TestGitHubActionsEscaping(t *testing.T) {
	t.Parallel()

	diags := []rules.Diagnostic{{
		File:     "a,b.py",
		Code:     "X100",
		Message:  "50% of lines\nare bad",
		Location: syntax.NewRange(1, 0, 1, 1),
		Severity: rules.SeverityError,
	}}

	var buf bytes.Buffer
	err := NewGitHubActionsReporter(&buf).Report(diags, nil, ReportMetadata{})
	require.NoError(t, err)

	assert.Equal(t, "::error file=a%2Cb.py,line=1,col=1,title=X100::50%25 of lines%0Aare bad\n", buf.String())
}

func TestMarkdownReportSingleFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewMarkdownReporter(&buf).Report(sampleDiagnostics(), nil, ReportMetadata{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "**2 issues** in `pkg/app.py`")
	assert.Contains(t, out, "| Line | Issue |")
	// Warnings sort before style findings.
	assert.Regexp(t, `(?s)Line too long.*Use`, out)
}

func TestMarkdownReportMultiFile(t *testing.T) {
	t.Parallel()

	diags := sampleDiagnostics()
	diags = append(diags, rules.Diagnostic{
		File:     "pkg/other.py",
		Code:     "SIM102",
		Message:  "Use a single `if` statement instead of nested `if` statements",
		Location: syntax.NewRange(10, 0, 12, 14),
		Severity: rules.SeverityStyle,
	})

	var buf bytes.Buffer
	err := NewMarkdownReporter(&buf).Report(diags, nil, ReportMetadata{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "**3 issues** across 2 files")
	assert.Contains(t, out, "| File | Line | Issue |")
	assert.Contains(t, out, "pkg/other.py")
}

func TestMarkdownReportEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewMarkdownReporter(&buf).Report(nil, nil, ReportMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "**No issues found**\n", buf.String())
}

func TestMarkdownEscapesPipes(t *testing.T) {
	t.Parallel()

	diags := []rules.Diagnostic{{
		File:     "a.py",
		Code:     "UP007",
		Message:  "Use `int | str`",
		Location: syntax.NewRange(1, 0, 1, 1),
		Severity: rules.SeverityStyle,
	}}

	var buf bytes.Buffer
	err := NewMarkdownReporter(&buf).Report(diags, nil, ReportMetadata{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Use `int \\| str`")
}

func TestSARIFReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewSARIFReporter(&buf, "sift", "1.2.3", "https://github.com/siftlint/sift")
	err := r.Report(sampleDiagnostics(), nil, ReportMetadata{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.1.0", doc["version"])

	snaps.MatchStandaloneJSON(t, buf.String())
}

func TestSARIFReportDefaultsToolInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewSARIFReporter(&buf, "", "", "").Report(nil, nil, ReportMetadata{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"sift"`)
}

func TestGetWriterFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	w, closeFn, err := GetWriter(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("ok"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestGetWriterStdStreams(t *testing.T) {
	t.Parallel()

	w, closeFn, err := GetWriter("stdout")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)
	require.NoError(t, closeFn())

	w, _, err = GetWriter("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
}
