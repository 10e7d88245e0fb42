package simplify

import (
	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// CodeReturnBool identifies the return-condition-directly rule.
const CodeReturnBool = "SIM103"

func init() {
	rules.Register(rules.Metadata{
		Code:            CodeReturnBool,
		Name:            "needless-bool",
		Summary:         "Return the condition directly instead of returning True/False",
		DocURL:          "https://docs.siftlint.dev/rules/needless-bool",
		DefaultSeverity: rules.SeverityStyle,
		Fixable:         true,
	})
	check.RegisterStmt(syntax.KindIf, CodeReturnBool, returnBoolDirectly)
}

// returnBoolDirectly flags `if t: return True` / `else: return False`
// (and the negated pair) and rewrites it to `return t`.
func returnBoolDirectly(c *check.Checker, stmt syntax.Stmt, _ syntax.Stmt) {
	ifStmt := stmt.(*syntax.If)
	bodyBool, ok := singleReturnBool(ifStmt.Body)
	if !ok {
		return
	}
	elseBool, ok := singleReturnBool(ifStmt.Orelse)
	if !ok || bodyBool == elseBool {
		return
	}

	test, okT := singleLineSlice(c, ifStmt.Test)
	if !okT {
		// No legible condition text to suggest; decline entirely.
		return
	}
	contents := "return " + test
	if !bodyBool {
		contents = "return not " + parenthesizeTest(ifStmt.Test, test)
	}

	d := rules.NewDiagnostic(
		CodeReturnBool,
		"Return the condition `"+test+"` directly",
		ifStmt.Span(),
	)

	fits := ifStmt.Span().Start.Col+len([]rune(contents)) <= c.LineLength()
	if c.Patch(CodeReturnBool) && fits && !c.HasCommentIn(ifStmt.Span()) {
		d.Amend(rules.Replacement(contents, ifStmt.Span().Start, ifStmt.Span().End))
	}
	c.Push(d)
}

// singleReturnBool matches a block consisting of exactly one
// `return True` or `return False`.
func singleReturnBool(body []syntax.Stmt) (value bool, ok bool) {
	if len(body) != 1 {
		return false, false
	}
	ret, isReturn := body[0].(*syntax.Return)
	if !isReturn || ret.Value == nil {
		return false, false
	}
	c, isConst := ret.Value.(*syntax.Constant)
	if !isConst || c.ConstKind != syntax.ConstBool {
		return false, false
	}
	return c.Value == "True", true
}

// parenthesizeTest wraps compound tests so `not` binds the whole
// condition.
func parenthesizeTest(test syntax.Expr, text string) string {
	switch test.(type) {
	case *syntax.BoolOp, *syntax.Compare, *syntax.IfExp:
		return "(" + text + ")"
	default:
		return text
	}
}
