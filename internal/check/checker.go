package check

import (
	"github.com/siftlint/sift/internal/config"
	"github.com/siftlint/sift/internal/rules"
	"github.com/siftlint/sift/internal/sourcemap"
	"github.com/siftlint/sift/internal/syntax"
)

// Checker carries the mutable traversal context: the binding table for
// call-path resolution, the diagnostic accumulator, and the ambient
// configuration. One Checker analyzes exactly one file; nothing is
// shared between files.
type Checker struct {
	// File is the path of the file under analysis, stamped onto every
	// diagnostic.
	File string

	// Source gives rules line-oriented access to the original text for
	// slicing replacement fragments and checking guards.
	Source *sourcemap.SourceMap

	// Config is the resolved per-file configuration, read-only.
	Config *config.Config

	// Comments lists the 1-based rows the parser saw a comment on. Line
	// rules that match comment text scan only these rows, so markers
	// inside string literals stay inert.
	Comments []int

	diagnostics []rules.Diagnostic
	bindings    map[string]binding
	currentStmt syntax.Stmt
}

// Analyze runs the rule set over a parsed module and returns the
// diagnostics ordered by source position. It is a pure computation: same
// tree, source, and config always produce the same list.
func Analyze(mod *syntax.Module, source []byte, commentRows []int, cfg *config.Config, file string) []rules.Diagnostic {
	c := &Checker{
		File:     file,
		Source:   sourcemap.New(source),
		Config:   cfg,
		Comments: commentRows,
		bindings: make(map[string]binding),
	}

	c.walkBody(mod.Body, nil)

	for _, reg := range lineHandlers {
		if c.Config.Enabled(reg.code) {
			reg.fn(c)
		}
	}

	return rules.SortDiagnostics(c.diagnostics)
}

// Push appends a diagnostic, stamping the file identity.
func (c *Checker) Push(d rules.Diagnostic) {
	d.File = c.File
	c.diagnostics = append(c.diagnostics, d)
}

// Enabled reports whether a rule code is active in the configuration.
func (c *Checker) Enabled(code string) bool {
	return c.Config.Enabled(code)
}

// Patch reports whether a rule should attempt to attach a fix: auto-fix
// mode is on and the code is fixable per configuration. Detection and
// fixing are gated independently: a rule that cannot patch still emits
// its diagnostic.
func (c *Checker) Patch(code string) bool {
	return c.Config.Fix && c.Config.ShouldFix(code)
}

// LineLength returns the configured maximum line width.
func (c *Checker) LineLength() int {
	return c.Config.LineLength
}

func (c *Checker) walkBody(body []syntax.Stmt, parent syntax.Stmt) {
	for _, stmt := range body {
		c.walkStmt(stmt, parent)
	}
}

// EnclosingStmt returns the statement currently being traversed.
// Expression rules use its start position as the diagnostic's parent when
// the finding sits on a later physical line of a multi-line statement, so
// suppression can attach to the statement's own line.
func (c *Checker) EnclosingStmt() syntax.Stmt {
	return c.currentStmt
}

func (c *Checker) walkStmt(stmt syntax.Stmt, parent syntax.Stmt) {
	prev := c.currentStmt
	c.currentStmt = stmt
	defer func() { c.currentStmt = prev }()

	for _, reg := range stmtHandlers[stmt.Kind()] {
		if c.Config.Enabled(reg.code) {
			reg.fn(c, stmt, parent)
		}
	}

	switch s := stmt.(type) {
	case *syntax.If:
		c.walkExpr(s.Test)
		c.walkBody(s.Body, stmt)
		c.walkBody(s.Orelse, stmt)
	case *syntax.Assign:
		c.walkExpr(s.Value)
		// Bind after visiting the value: `x = x.f()` still resolves the
		// right-hand side through the old binding.
		c.shadow(s.Targets...)
	case *syntax.AnnAssign:
		c.walkExpr(s.Annotation)
		if s.Value != nil {
			c.walkExpr(s.Value)
		}
		c.shadow(s.Target)
	case *syntax.Return:
		if s.Value != nil {
			c.walkExpr(s.Value)
		}
	case *syntax.Import:
		c.bindImport(s)
	case *syntax.ImportFrom:
		c.bindImportFrom(s)
	case *syntax.ExprStmt:
		c.walkExpr(s.Value)
	case *syntax.FunctionDef:
		c.bindings[s.Name] = binding{kind: bindShadow}
		c.walkBody(s.Body, stmt)
	case *syntax.ClassDef:
		c.bindings[s.Name] = binding{kind: bindShadow}
		c.walkBody(s.Body, stmt)
	case *syntax.OpaqueStmt:
		c.walkBody(s.Body, stmt)
	}
}

func (c *Checker) walkExpr(expr syntax.Expr) {
	if expr == nil {
		return
	}

	for _, reg := range exprHandlers[expr.Kind()] {
		if c.Config.Enabled(reg.code) {
			reg.fn(c, expr)
		}
	}

	switch e := expr.(type) {
	case *syntax.Attribute:
		c.walkExpr(e.Value)
	case *syntax.Call:
		c.walkExpr(e.Func)
		for _, arg := range e.Args {
			c.walkExpr(arg)
		}
		for _, kw := range e.Keywords {
			c.walkExpr(kw.Value)
		}
	case *syntax.Compare:
		c.walkExpr(e.Left)
		for _, cmp := range e.Comparators {
			c.walkExpr(cmp)
		}
	case *syntax.Subscript:
		c.walkExpr(e.Value)
		c.walkExpr(e.Slice)
	case *syntax.BinOp:
		c.walkExpr(e.Left)
		c.walkExpr(e.Right)
	case *syntax.BoolOp:
		c.walkExpr(e.Left)
		c.walkExpr(e.Right)
	case *syntax.UnaryOp:
		c.walkExpr(e.Operand)
	case *syntax.IfExp:
		c.walkExpr(e.Test)
		c.walkExpr(e.Body)
		c.walkExpr(e.Orelse)
	case *syntax.Tuple:
		for _, elt := range e.Elts {
			c.walkExpr(elt)
		}
	}
}
