// Package check implements the traversal and dispatch orchestrator: a
// single depth-first walk of the syntax tree that maintains the import
// binding table, fans each node out to the rules registered for its
// shape, and accumulates diagnostics.
package check

import "github.com/siftlint/sift/internal/syntax"

// StmtHandler inspects one statement. parent is the enclosing statement,
// or nil at module level. Handlers push 0+ diagnostics and never mutate
// the tree.
type StmtHandler func(c *Checker, stmt syntax.Stmt, parent syntax.Stmt)

// ExprHandler inspects one expression.
type ExprHandler func(c *Checker, expr syntax.Expr)

// LineHandler runs once per file after traversal, for rules that match
// raw lines rather than tree shapes.
type LineHandler func(c *Checker)

type stmtRegistration struct {
	code string
	fn   StmtHandler
}

type exprRegistration struct {
	code string
	fn   ExprHandler
}

type lineRegistration struct {
	code string
	fn   LineHandler
}

// Handlers are keyed by node kind and kept in registration order, so
// dispatch among rules interested in the same shape is deterministic.
var (
	stmtHandlers = map[syntax.Kind][]stmtRegistration{}
	exprHandlers = map[syntax.Kind][]exprRegistration{}
	lineHandlers []lineRegistration
)

// RegisterStmt registers a statement rule for one node kind. Called from
// rule package init functions; the import order of internal/rules/all
// fixes the registration order.
func RegisterStmt(kind syntax.Kind, code string, fn StmtHandler) {
	stmtHandlers[kind] = append(stmtHandlers[kind], stmtRegistration{code: code, fn: fn})
}

// RegisterExpr registers an expression rule for one node kind.
func RegisterExpr(kind syntax.Kind, code string, fn ExprHandler) {
	exprHandlers[kind] = append(exprHandlers[kind], exprRegistration{code: code, fn: fn})
}

// RegisterLine registers a per-file line rule.
func RegisterLine(code string, fn LineHandler) {
	lineHandlers = append(lineHandlers, lineRegistration{code: code, fn: fn})
}
