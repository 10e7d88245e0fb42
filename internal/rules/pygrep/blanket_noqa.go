// Package pygrep implements the PGH rule family: pattern checks over
// comments.
package pygrep

import (
	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/noqa"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

func init() {
	rules.Register(rules.Metadata{
		Code:            rules.BlanketSuppressionCode,
		Name:            "blanket-noqa",
		Summary:         "noqa directives should list the codes they suppress",
		DocURL:          "https://docs.siftlint.dev/rules/blanket-noqa",
		DefaultSeverity: rules.SeverityWarning,
	})
	check.RegisterLine(rules.BlanketSuppressionCode, blanketNoqa)
}

// blanketNoqa flags bare `# noqa` directives. A blanket directive hides
// every future finding on its line, so each one must name its codes.
// This rule's own findings are exempt from noqa matching; otherwise the
// directive it flags would immediately suppress it.
func blanketNoqa(c *check.Checker) {
	for _, row := range c.Comments {
		d := noqa.ExtractDirective(row, c.Source.Line(row))
		if d.Kind != noqa.DirectiveAll {
			continue
		}
		c.Push(rules.NewDiagnostic(
			rules.BlanketSuppressionCode,
			"Use specific rule codes when using noqa",
			syntax.NewRange(row, d.Start, row, d.End),
		))
	}
}
