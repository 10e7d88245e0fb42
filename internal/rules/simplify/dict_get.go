package simplify

import (
	"github.com/siftlint/sift/internal/check"
	"github.com/siftlint/sift/internal/render"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/syntax"
)

// CodeDictGet identifies the membership-test-to-get collapse rule.
const CodeDictGet = "SIM401"

func init() {
	rules.Register(rules.Metadata{
		Code:            CodeDictGet,
		Name:            "if-else-block-instead-of-dict-get",
		Summary:         "Use dict.get with default instead of an if-else block",
		DocURL:          "https://docs.siftlint.dev/rules/if-else-block-instead-of-dict-get",
		DefaultSeverity: rules.SeverityStyle,
		Fixable:         true,
	})
	check.RegisterStmt(syntax.KindIf, CodeDictGet, dictGetWithDefault)
}

// dictGetWithDefault flags
//
//	if key in d: var = d[key]
//	else:        var = default
//
// (or the `not in` form with arms swapped) and rewrites it to
// `var = d.get(key, default)`.
func dictGetWithDefault(c *check.Checker, stmt syntax.Stmt, _ syntax.Stmt) {
	ifStmt := stmt.(*syntax.If)
	if len(ifStmt.Body) != 1 || len(ifStmt.Orelse) != 1 {
		return
	}
	bodyAssign, ok := ifStmt.Body[0].(*syntax.Assign)
	if !ok || len(bodyAssign.Targets) != 1 {
		return
	}
	elseAssign, ok := ifStmt.Orelse[0].(*syntax.Assign)
	if !ok || len(elseAssign.Targets) != 1 {
		return
	}
	test, ok := ifStmt.Test.(*syntax.Compare)
	if !ok || len(test.Ops) != 1 || len(test.Comparators) != 1 {
		return
	}

	var lookupVar, defaultVar, lookupVal, defaultVal syntax.Expr
	switch test.Ops[0] {
	case "in":
		lookupVar, lookupVal = bodyAssign.Targets[0], bodyAssign.Value
		defaultVar, defaultVal = elseAssign.Targets[0], elseAssign.Value
	case "not in":
		lookupVar, lookupVal = elseAssign.Targets[0], elseAssign.Value
		defaultVar, defaultVal = bodyAssign.Targets[0], bodyAssign.Value
	default:
		return
	}

	subscript, ok := lookupVal.(*syntax.Subscript)
	if !ok {
		return
	}

	// The key, the target variable, and the dict expression must be
	// structurally identical across both arms.
	if !syntax.Equal(subscript.Slice, test.Left) ||
		!syntax.Equal(lookupVar, defaultVar) ||
		!syntax.Equal(test.Comparators[0], subscript.Value) {
		return
	}

	// A default with side effects is not equivalent: the if form only
	// evaluates it on the miss path, d.get always does.
	if syntax.HasSideEffects(defaultVal) {
		return
	}

	target, okT := singleLineSlice(c, lookupVar)
	dict, okD := singleLineSlice(c, subscript.Value)
	key, okK := singleLineSlice(c, test.Left)
	dflt, okF := singleLineSlice(c, defaultVal)
	if !okT || !okD || !okK || !okF {
		return
	}

	contents := render.Text(render.Assign{
		Target: render.Raw(target),
		Value: render.Call{
			Func: render.Attr{Value: render.Raw(dict), Name: "get"},
			Args: []render.Fragment{render.Raw(key), render.Raw(dflt)},
		},
	})

	d := rules.NewDiagnostic(
		CodeDictGet,
		"Use `"+contents+"` instead of an `if` block",
		ifStmt.Span(),
	)

	fits := ifStmt.Span().Start.Col+len([]rune(contents)) <= c.LineLength()
	if c.Patch(CodeDictGet) && fits && !c.HasCommentIn(ifStmt.Span()) {
		d.Amend(rules.Replacement(contents, ifStmt.Span().Start, ifStmt.Span().End))
	}
	c.Push(d)
}
