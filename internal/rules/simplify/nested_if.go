// Package simplify implements the SIM rule family: conditionals that can
// be collapsed into simpler equivalent forms.
package simplify

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/render"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// CodeNestedIf identifies the nested-conditional flattening rule.
const CodeNestedIf = "SIM102"

func init() {
	rules.Register(rules.Metadata{
		Code:            CodeNestedIf,
		Name:            "collapsible-if",
		Summary:         "Use a single if statement instead of nested if statements",
		DocURL:          "https://docs.siftlint.dev/rules/collapsible-if",
		DefaultSeverity: rules.SeverityStyle,
		Fixable:         true,
	})
	check.RegisterStmt(syntax.KindIf, CodeNestedIf, nestedIf)
}

// nestedIf flags `if a:` whose entire body is another `if b:` when
// neither carries an else arm; the pair collapses to `if a and b:`.
func nestedIf(c *check.Checker, stmt syntax.Stmt, _ syntax.Stmt) {
	outer := stmt.(*syntax.If)
	if len(outer.Orelse) != 0 || len(outer.Body) != 1 {
		return
	}
	inner, ok := outer.Body[0].(*syntax.If)
	if !ok || len(inner.Orelse) != 0 || inner.Elif {
		return
	}

	if syntax.IsMainGuard(outer.Test) {
		return
	}

	d := rules.NewDiagnostic(
		CodeNestedIf,
		"Use a single `if` statement instead of nested `if` statements",
		outer.Span(),
	)

	if c.Patch(CodeNestedIf) {
		// The rewrite preserves comments in the nested body but would
		// drop comments between the two tests, so decline in that case.
		between := syntax.Range{Start: outer.Span().Start, End: inner.Span().Start}
		if !c.HasCommentIn(between) {
			if fix, ok := fixNestedIf(c, outer, inner); ok {
				d.Amend(fix)
			}
		}
	}

	c.Push(d)
}

// fixNestedIf composes the flattened statement textually: the two test
// expressions joined with `and`, followed by the inner body dedented one
// level. Body lines are taken wholesale so trailing comments survive.
func fixNestedIf(c *check.Checker, outer, inner *syntax.If) (rules.Fix, bool) {
	testA, okA := testFragment(c, outer.Test)
	testB, okB := testFragment(c, inner.Test)
	if !okA || !okB {
		return rules.Fix{}, false
	}

	header := "if " + render.Text(render.Binary{Left: testA, Op: "and", Right: testB}) + ":"

	innerIndent := c.Source.Indentation(inner.Span().Start.Row)
	bodyStart := inner.Body[0].Span().Start.Row
	bodyEnd := inner.Body[len(inner.Body)-1].Span().End.Row
	bodyIndent := c.Source.Indentation(bodyStart)
	if !strings.HasPrefix(bodyIndent, innerIndent) {
		logrus.WithField("rule", CodeNestedIf).Debug("inconsistent indentation, skipping fix")
		return rules.Fix{}, false
	}
	strip := len(bodyIndent) - len(innerIndent)

	var lines []string
	for row := bodyStart; row <= bodyEnd; row++ {
		line := c.Source.Line(row)
		if len(line) >= strip && strings.TrimSpace(line[:strip]) == "" {
			line = line[strip:]
		}
		lines = append(lines, line)
	}

	content := header + "\n" + strings.Join(lines, "\n")
	if !render.FitsWithin(content, outer.Span().Start.Col, c.LineLength()) {
		return rules.Fix{}, false
	}

	end := syntax.Position{Row: bodyEnd, Col: c.Source.LineWidth(bodyEnd)}
	return rules.Replacement(content, outer.Span().Start, end), true
}

// testFragment slices a test expression from the source, parenthesizing
// shapes whose precedence would change under `and`. Multi-line tests and
// shapes the engine cannot model are declined.
func testFragment(c *check.Checker, test syntax.Expr) (render.Fragment, bool) {
	if _, ok := test.(*syntax.OpaqueExpr); ok {
		return nil, false
	}
	text := c.Source.Slice(test.Span())
	if strings.Contains(text, "\n") {
		return nil, false
	}
	switch t := test.(type) {
	case *syntax.BoolOp:
		if t.Op == "or" {
			return render.Raw("(" + text + ")"), true
		}
	case *syntax.IfExp:
		return render.Raw("(" + text + ")"), true
	}
	return render.Raw(text), true
}
