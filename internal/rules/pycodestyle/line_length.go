// Package pycodestyle implements the E rule family: layout conventions
// checked against raw source lines.
package pycodestyle

import (
	"fmt"

	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// CodeLineTooLong identifies the maximum line length rule.
const CodeLineTooLong = "E501"

func init() {
	rules.Register(rules.Metadata{
		Code:            CodeLineTooLong,
		Name:            "line-too-long",
		Summary:         "Line exceeds the configured maximum length",
		DocURL:          "https://docs.siftlint.dev/rules/line-too-long",
		DefaultSeverity: rules.SeverityWarning,
	})
	check.RegisterLine(CodeLineTooLong, lineTooLong)
}

// lineTooLong measures each line in runes against the configured limit.
// The reported range covers the overflowing tail of the line.
func lineTooLong(c *check.Checker) {
	limit := c.LineLength()
	if limit <= 0 {
		return
	}
	for row := 1; row <= c.Source.LineCount(); row++ {
		width := c.Source.LineWidth(row)
		if width <= limit {
			continue
		}
		c.Push(rules.NewDiagnostic(
			CodeLineTooLong,
			fmt.Sprintf("Line too long (%d > %d characters)", width, limit),
			syntax.NewRange(row, limit, row, width),
		))
	}
}
