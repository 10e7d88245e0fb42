// Package upgrade implements the UP rule family: constructs superseded
// by newer language syntax.
package upgrade

import (
	"strings"

	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/render"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// CodeUnionSyntax identifies the typing.Union/Optional normalization rule.
const CodeUnionSyntax = "UP007"

func init() {
	rules.Register(rules.Metadata{
		Code:            CodeUnionSyntax,
		Name:            "typing-union",
		Summary:         "Use X | Y for type unions instead of typing.Union/Optional",
		DocURL:          "https://docs.siftlint.dev/rules/typing-union",
		DefaultSeverity: rules.SeverityStyle,
		Fixable:         true,
	})
	check.RegisterExpr(syntax.KindSubscript, CodeUnionSyntax, unionSyntax)
}

// unionSyntax rewrites `Union[A, B, ...]` to a left-associative `A | B`
// chain and `Optional[T]` to `T | None`. Any string-literal argument is a
// forward reference whose meaning would change under the operator form,
// so those are skipped entirely.
func unionSyntax(c *check.Checker, expr syntax.Expr) {
	sub := expr.(*syntax.Subscript)

	var isOptional bool
	switch {
	case c.MatchCallPath(sub.Value, "typing", "Optional"):
		isOptional = true
	case c.MatchCallPath(sub.Value, "typing", "Union"):
	default:
		return
	}

	if syntax.IsForwardReference(sub.Slice) {
		return
	}

	d := rules.NewDiagnostic(
		CodeUnionSyntax,
		"Use `X | Y` for type annotations",
		sub.Span(),
	)
	if stmt := c.EnclosingStmt(); stmt != nil && stmt.Span().Start.Row != sub.Span().Start.Row {
		d = d.WithParent(stmt.Span().Start)
	}

	if c.Patch(CodeUnionSyntax) {
		if content, ok := unionReplacement(c, sub, isOptional); ok {
			fits := render.FitsWithin(content, sub.Span().Start.Col, c.LineLength())
			if fits && !c.HasCommentIn(sub.Span()) {
				d.Amend(rules.Replacement(content, sub.Span().Start, sub.Span().End))
			}
		}
	}

	c.Push(d)
}

func unionReplacement(c *check.Checker, sub *syntax.Subscript, isOptional bool) (string, bool) {
	if isOptional {
		arg, ok := argFragment(c, sub.Slice)
		if !ok {
			return "", false
		}
		return render.Text(render.Binary{Left: arg, Op: "|", Right: render.Raw("None")}), true
	}

	elts := []syntax.Expr{sub.Slice}
	if tuple, ok := sub.Slice.(*syntax.Tuple); ok {
		if len(tuple.Elts) == 0 {
			return "", false
		}
		elts = tuple.Elts
	}

	args := make([]render.Fragment, 0, len(elts))
	for _, elt := range elts {
		arg, ok := argFragment(c, elt)
		if !ok {
			return "", false
		}
		args = append(args, arg)
	}
	return render.Text(render.Union(args)), true
}

// argFragment slices one union argument from the source. Multi-line
// arguments decline the fix; the diagnostic still stands.
func argFragment(c *check.Checker, e syntax.Expr) (render.Fragment, bool) {
	text := c.Source.Slice(e.Span())
	if text == "" || strings.Contains(text, "\n") {
		return nil, false
	}
	return render.Raw(text), true
}
