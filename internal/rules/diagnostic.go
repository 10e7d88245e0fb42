package rules

import "github.com/siftlint/sift/internal/syntax"

// Fix is a proposed text replacement for a source range. An empty Content
// encodes deletion. A diagnostic carries at most one fix; callers applying
// fixes are responsible for only applying non-overlapping diagnostics per
// pass.
type Fix struct {
	// Content is the replacement text; empty means delete the range.
	Content string `json:"content"`
	// Location is the half-open range the replacement covers.
	Location syntax.Range `json:"location"`
}

// Replacement builds a fix substituting content for the span between two
// positions.
func Replacement(content string, start, end syntax.Position) Fix {
	return Fix{Content: content, Location: syntax.Range{Start: start, End: end}}
}

// Deletion builds a fix removing the span between two positions.
func Deletion(start, end syntax.Position) Fix {
	return Fix{Location: syntax.Range{Start: start, End: end}}
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// File is the path to the source file.
	File string `json:"file"`

	// Code is the stable identifier of the originating rule.
	Code string `json:"code"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// Detail provides additional context (optional).
	Detail string `json:"detail,omitempty"`

	// Location is the primary source range of the finding.
	Location syntax.Range `json:"location"`

	// Parent is the start of an enclosing construct, set when suppression
	// must attach to an outer line rather than the diagnostic's own line
	// (e.g. a finding inside a multi-line statement).
	Parent *syntax.Position `json:"-"`

	// Severity indicates how critical this finding is.
	Severity Severity `json:"severity"`

	// Fix is an optional auto-fix. Attached only when the rule is fixable,
	// enabled for auto-fix in configuration, and its safety guards passed.
	Fix *Fix `json:"fix,omitempty"`

	// Snippet is the source fragment where the finding occurred.
	// Populated by post-processing; rules don't set it.
	Snippet string `json:"snippet,omitempty"`
}

// NewDiagnostic creates an un-fixed diagnostic. The severity defaults to
// the registered metadata for the code when available.
func NewDiagnostic(code, message string, loc syntax.Range) Diagnostic {
	severity := SeverityWarning
	if m, ok := Lookup(code); ok {
		severity = m.DefaultSeverity
	}
	return Diagnostic{
		Code:     code,
		Message:  message,
		Location: loc,
		Severity: severity,
	}
}

// Amend attaches the diagnostic's single fix. A fix anchored at a
// synthetic (zero) position is discarded rather than attached.
func (d *Diagnostic) Amend(fix Fix) {
	if fix.Location.Start.IsZero() || fix.Location.End.IsZero() {
		return
	}
	d.Fix = &fix
}

// WithParent records the enclosing construct's start position.
func (d Diagnostic) WithParent(p syntax.Position) Diagnostic {
	d.Parent = &p
	return d
}

// WithDetail adds a detail message.
func (d Diagnostic) WithDetail(detail string) Diagnostic {
	d.Detail = detail
	return d
}

// Row returns the starting row of the primary range.
func (d Diagnostic) Row() int {
	return d.Location.Start.Row
}

// SortDiagnostics orders diagnostics by (file, range, code) for
// deterministic output. Returns a new slice.
func SortDiagnostics(diags []Diagnostic) []Diagnostic {
	return sortDiagnostics(diags)
}
