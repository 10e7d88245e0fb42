package upgrade

import (
	"strings"

	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// CodeCaptureOutput identifies the subprocess capture_output rule.
const CodeCaptureOutput = "UP022"

func init() {
	rules.Register(rules.Metadata{
		Code:            CodeCaptureOutput,
		Name:            "subprocess-capture-output",
		Summary:         "Use capture_output=True instead of stdout=PIPE and stderr=PIPE",
		DocURL:          "https://docs.siftlint.dev/rules/subprocess-capture-output",
		DefaultSeverity: rules.SeverityStyle,
		Fixable:         true,
	})
	check.RegisterExpr(syntax.KindCall, CodeCaptureOutput, captureOutput)
}

// captureOutput flags `subprocess.run(..., stdout=subprocess.PIPE,
// stderr=subprocess.PIPE)` calls. The fix merges the pair into a single
// `capture_output=True` keyword, preserving any arguments that sit
// between the two.
func captureOutput(c *check.Checker, expr syntax.Expr) {
	call := expr.(*syntax.Call)
	if !c.MatchCallPath(call.Func, "subprocess", "run") {
		return
	}

	var stdout, stderr *syntax.Keyword
	for i := range call.Keywords {
		kw := &call.Keywords[i]
		switch kw.Arg {
		case "stdout":
			stdout = kw
		case "stderr":
			stderr = kw
		case "capture_output":
			return
		}
	}
	if stdout == nil || stderr == nil {
		return
	}
	if !c.MatchCallPath(stdout.Value, "subprocess", "PIPE") ||
		!c.MatchCallPath(stderr.Value, "subprocess", "PIPE") {
		return
	}

	d := rules.NewDiagnostic(
		CodeCaptureOutput,
		"Sending stdout and stderr to PIPE is deprecated, use capture_output",
		call.Span(),
	)
	if stmt := c.EnclosingStmt(); stmt != nil && stmt.Span().Start.Row != call.Span().Start.Row {
		d = d.WithParent(stmt.Span().Start)
	}

	if c.Patch(CodeCaptureOutput) {
		first, last := stdout, stderr
		if last.Loc.Start.Before(first.Loc.Start) {
			first, last = last, first
		}
		span := syntax.Range{Start: first.Loc.Start, End: last.Loc.End}
		if !c.HasCommentIn(span) {
			content := mergedKeyword(c, first, last)
			d.Amend(rules.Replacement(content, span.Start, span.End))
		}
	}

	c.Push(d)
}

// mergedKeyword builds the replacement for the span covering both
// keywords. Arguments written between the pair are kept: stripped of the
// separators that joined them to the removed keywords and re-attached
// after capture_output, on their own line when the pair spanned lines.
func mergedKeyword(c *check.Checker, first, last *syntax.Keyword) string {
	middle := c.Source.Slice(syntax.Range{Start: first.Loc.End, End: last.Loc.Start})
	middle = strings.Trim(middle, " \t\r\n,")
	if middle == "" {
		return "capture_output=True"
	}
	if first.Loc.Start.Row != last.Loc.Start.Row {
		indent := c.Source.Indentation(last.Loc.Start.Row)
		return "capture_output=True,\n" + indent + middle
	}
	return "capture_output=True, " + middle
}
