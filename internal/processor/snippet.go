package processor

import (
	"github.com/siftlint/sift/internal/rules"
)

// SnippetAttachment populates the Snippet field of diagnostics, so
// reporters can display source context without re-reading files.
type SnippetAttachment struct{}

// NewSnippetAttachment creates a new snippet attachment processor.
func NewSnippetAttachment() *SnippetAttachment {
	return &SnippetAttachment{}
}

// Name returns the processor's identifier.
func (p *SnippetAttachment) Name() string {
	return "snippet-attachment"
}

// Process attaches source snippets. Diagnostics that already carry one,
// or whose file is missing from the context, pass through unchanged.
func (p *SnippetAttachment) Process(diags []rules.Diagnostic, ctx *Context) []rules.Diagnostic {
	return transformDiagnostics(diags, func(d rules.Diagnostic) rules.Diagnostic {
		if d.Snippet != "" || d.Location.IsZero() {
			return d
		}
		sm := ctx.GetSourceMap(d.File)
		if sm == nil {
			return d
		}
		endRow := d.Location.End.Row
		// A range ending at column 0 does not cover the final row.
		if d.Location.End.Col == 0 && endRow > d.Location.Start.Row {
			endRow--
		}
		d.Snippet = sm.Snippet(d.Location.Start.Row, endRow)
		return d
	})
}
