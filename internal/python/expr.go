package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/siftlint/sift/internal/syntax"
)

func (cv *converter) expr(n *sitter.Node) syntax.Expr {
	if n == nil {
		return &syntax.OpaqueExpr{}
	}
	switch n.Type() {
	case "identifier":
		return &syntax.Name{Loc: cv.span(n), ID: cv.text(n)}
	case "attribute":
		return &syntax.Attribute{
			Loc:   cv.span(n),
			Value: cv.expr(n.ChildByFieldName("object")),
			Attr:  cv.fieldText(n, "attribute"),
		}
	case "call":
		return cv.call(n)
	case "string", "concatenated_string":
		return cv.str(n)
	case "integer":
		return &syntax.Constant{Loc: cv.span(n), ConstKind: syntax.ConstInt, Value: cv.text(n)}
	case "float":
		return &syntax.Constant{Loc: cv.span(n), ConstKind: syntax.ConstFloat, Value: cv.text(n)}
	case "true", "false":
		return &syntax.Constant{Loc: cv.span(n), ConstKind: syntax.ConstBool, Value: cv.text(n)}
	case "none":
		return &syntax.Constant{Loc: cv.span(n), ConstKind: syntax.ConstNone, Value: "None"}
	case "ellipsis":
		return &syntax.Constant{Loc: cv.span(n), ConstKind: syntax.ConstEllipsis, Value: "..."}
	case "comparison_operator":
		return cv.comparison(n)
	case "subscript":
		return cv.subscript(n)
	case "binary_operator":
		return &syntax.BinOp{
			Loc:   cv.span(n),
			Left:  cv.expr(n.ChildByFieldName("left")),
			Op:    cv.fieldText(n, "operator"),
			Right: cv.expr(n.ChildByFieldName("right")),
		}
	case "boolean_operator":
		return &syntax.BoolOp{
			Loc:   cv.span(n),
			Left:  cv.expr(n.ChildByFieldName("left")),
			Op:    cv.fieldText(n, "operator"),
			Right: cv.expr(n.ChildByFieldName("right")),
		}
	case "not_operator":
		return &syntax.UnaryOp{
			Loc:     cv.span(n),
			Op:      "not",
			Operand: cv.expr(n.ChildByFieldName("argument")),
		}
	case "unary_operator":
		return &syntax.UnaryOp{
			Loc:     cv.span(n),
			Op:      cv.fieldText(n, "operator"),
			Operand: cv.expr(n.ChildByFieldName("argument")),
		}
	case "conditional_expression":
		// Children are `body if test else orelse`.
		if n.NamedChildCount() == 3 {
			return &syntax.IfExp{
				Loc:    cv.span(n),
				Body:   cv.expr(n.NamedChild(0)),
				Test:   cv.expr(n.NamedChild(1)),
				Orelse: cv.expr(n.NamedChild(2)),
			}
		}
		return &syntax.OpaqueExpr{Loc: cv.span(n)}
	case "tuple", "expression_list":
		t := &syntax.Tuple{Loc: cv.span(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			t.Elts = append(t.Elts, cv.expr(n.NamedChild(i)))
		}
		return t
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return cv.expr(n.NamedChild(0))
		}
		return &syntax.OpaqueExpr{Loc: cv.span(n)}
	default:
		return &syntax.OpaqueExpr{Loc: cv.span(n)}
	}
}

func (cv *converter) call(n *sitter.Node) syntax.Expr {
	c := &syntax.Call{Loc: cv.span(n), Func: cv.expr(n.ChildByFieldName("function"))}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return c
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
		case "keyword_argument":
			c.Keywords = append(c.Keywords, syntax.Keyword{
				Loc:   cv.span(arg),
				Arg:   cv.fieldText(arg, "name"),
				Value: cv.expr(arg.ChildByFieldName("value")),
			})
		case "dictionary_splat":
			c.Keywords = append(c.Keywords, syntax.Keyword{
				Loc:   cv.span(arg),
				Value: &syntax.OpaqueExpr{Loc: cv.span(arg)},
			})
		default:
			c.Args = append(c.Args, cv.expr(arg))
		}
	}
	return c
}

// str converts a string literal. F-strings and implicit concatenation
// are opaque: their value is not a plain constant.
func (cv *converter) str(n *sitter.Node) syntax.Expr {
	if n.Type() == "concatenated_string" {
		return &syntax.OpaqueExpr{Loc: cv.span(n)}
	}
	content, ok := unquote(cv.text(n))
	if !ok {
		return &syntax.OpaqueExpr{Loc: cv.span(n)}
	}
	return &syntax.Constant{Loc: cv.span(n), ConstKind: syntax.ConstStr, Value: content}
}

func unquote(raw string) (string, bool) {
	i := 0
	for i < len(raw) && raw[i] != '"' && raw[i] != '\'' {
		if strings.ContainsRune("fF", rune(raw[i])) {
			return "", false
		}
		i++
	}
	s := raw[i:]
	for _, quote := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2*len(quote) {
			return s[len(quote) : len(s)-len(quote)], true
		}
	}
	return "", false
}

// comparison converts a chained comparison. Operands are the named
// children; the operator tokens sit between them, with `not in` and
// `is not` split across two tokens.
func (cv *converter) comparison(n *sitter.Node) syntax.Expr {
	var operands []syntax.Expr
	var ops []string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "comment" {
			continue
		}
		if child.IsNamed() {
			operands = append(operands, cv.expr(child))
			continue
		}
		tok := cv.text(child)
		if len(ops) > 0 && len(ops) >= len(operands) {
			// Second half of a two-token operator.
			ops[len(ops)-1] += " " + tok
		} else {
			ops = append(ops, tok)
		}
	}
	if len(operands) < 2 || len(ops) != len(operands)-1 {
		return &syntax.OpaqueExpr{Loc: cv.span(n)}
	}
	return &syntax.Compare{
		Loc:         cv.span(n),
		Left:        operands[0],
		Ops:         ops,
		Comparators: operands[1:],
	}
}

func (cv *converter) subscript(n *sitter.Node) syntax.Expr {
	value := n.ChildByFieldName("value")
	sub := &syntax.Subscript{Loc: cv.span(n), Value: cv.expr(value)}

	var elts []syntax.Expr
	var first, last *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if value != nil && child.StartByte() == value.StartByte() {
			continue
		}
		if first == nil {
			first = child
		}
		last = child
		elts = append(elts, cv.expr(child))
	}
	switch len(elts) {
	case 0:
		sub.Slice = &syntax.OpaqueExpr{}
	case 1:
		sub.Slice = elts[0]
	default:
		sub.Slice = &syntax.Tuple{
			Loc:  syntax.Range{Start: cv.pos(first.StartPoint()), End: cv.pos(last.EndPoint())},
			Elts: elts,
		}
	}
	return sub
}
