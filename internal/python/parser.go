// Package python parses Python source into the engine's syntax tree.
//
// Parsing is delegated to tree-sitter; this package walks the concrete
// tree once and converts the statement and expression shapes the rules
// model into internal/syntax nodes. Everything else becomes an opaque
// node that keeps its span and, for statements, its nested blocks, so
// traversal still reaches code inside loops and try blocks.
package python

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/siftlint/sift/internal/syntax"
)

// File is one parsed source file plus the line facts the suppression
// pass needs.
type File struct {
	Module *syntax.Module

	// CommentLines lists the 1-based rows containing a comment, in order.
	CommentLines []int

	// NoqaLineFor maps rows inside a multi-line simple statement to the
	// statement's final row, where a trailing directive comment lives.
	NoqaLineFor map[int]int
}

// Parse converts source into a File. Files with syntax errors are
// rejected: rules assume a well-formed tree.
func Parse(ctx context.Context, source []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, fmt.Errorf("syntax error at %d:%d", bad.StartPoint().Row+1, bad.StartPoint().Column)
		}
		return nil, fmt.Errorf("syntax error")
	}

	cv := &converter{
		source:      source,
		lines:       bytes.Split(source, []byte("\n")),
		noqaLineFor: map[int]int{},
	}
	f := &File{
		Module:      &syntax.Module{Body: cv.stmts(root)},
		NoqaLineFor: cv.noqaLineFor,
	}
	collectComments(root, &f.CommentLines)
	return f, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.HasError() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

func collectComments(n *sitter.Node, rows *[]int) {
	if n.Type() == "comment" {
		row := int(n.StartPoint().Row) + 1
		if len(*rows) == 0 || (*rows)[len(*rows)-1] != row {
			*rows = append(*rows, row)
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectComments(n.Child(i), rows)
	}
}

type converter struct {
	source      []byte
	lines       [][]byte
	noqaLineFor map[int]int
}

// pos converts a tree-sitter point to the engine's position. Tree-sitter
// columns are byte offsets into the line; diagnostics count runes.
func (cv *converter) pos(p sitter.Point) syntax.Position {
	row, col := int(p.Row), int(p.Column)
	if row < len(cv.lines) && col <= len(cv.lines[row]) {
		col = utf8.RuneCount(cv.lines[row][:col])
	}
	return syntax.Position{Row: row + 1, Col: col}
}

func (cv *converter) span(n *sitter.Node) syntax.Range {
	return syntax.Range{Start: cv.pos(n.StartPoint()), End: cv.pos(n.EndPoint())}
}

func (cv *converter) text(n *sitter.Node) string {
	return n.Content(cv.source)
}

// stmts converts the statement children of a module or block node.
func (cv *converter) stmts(n *sitter.Node) []syntax.Stmt {
	var out []syntax.Stmt
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if s := cv.stmt(child); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (cv *converter) stmt(n *sitter.Node) syntax.Stmt {
	switch n.Type() {
	case "if_statement":
		return cv.ifStmt(n)
	case "expression_statement":
		return cv.exprStmt(n)
	case "return_statement":
		cv.markLogicalLine(n)
		var value syntax.Expr
		if n.NamedChildCount() > 0 {
			value = cv.expr(n.NamedChild(0))
		}
		return &syntax.Return{Loc: cv.span(n), Value: value}
	case "import_statement":
		return cv.importStmt(n)
	case "import_from_statement":
		return cv.importFromStmt(n)
	case "function_definition":
		return &syntax.FunctionDef{
			Loc:  cv.span(n),
			Name: cv.fieldText(n, "name"),
			Body: cv.stmts(n.ChildByFieldName("body")),
		}
	case "class_definition":
		return &syntax.ClassDef{
			Loc:  cv.span(n),
			Name: cv.fieldText(n, "name"),
			Body: cv.stmts(n.ChildByFieldName("body")),
		}
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			return cv.stmt(def)
		}
		return &syntax.OpaqueStmt{Loc: cv.span(n)}
	case "pass_statement":
		return &syntax.Pass{Loc: cv.span(n)}
	default:
		return &syntax.OpaqueStmt{Loc: cv.span(n), Body: cv.nestedBlocks(n)}
	}
}

// nestedBlocks pulls the statements out of every block beneath an
// unmodeled compound statement, so rules still fire inside it.
func (cv *converter) nestedBlocks(n *sitter.Node) []syntax.Stmt {
	var out []syntax.Stmt
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "block" {
			out = append(out, cv.stmts(child)...)
		} else {
			out = append(out, cv.nestedBlocks(child)...)
		}
	}
	return out
}

// ifStmt folds an elif chain into nested If nodes in Orelse, the shape
// rules expect. An elif's span runs to the end of the whole chain, since
// the clauses after it belong to its else arm.
func (cv *converter) ifStmt(n *sitter.Node) syntax.Stmt {
	end := cv.pos(n.EndPoint())

	var orelse []syntax.Stmt
	var clauses []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "elif_clause":
			clauses = append(clauses, child)
		case "else_clause":
			if body := child.ChildByFieldName("body"); body != nil {
				orelse = cv.stmts(body)
			}
		}
	}
	for i := len(clauses) - 1; i >= 0; i-- {
		clause := clauses[i]
		orelse = []syntax.Stmt{&syntax.If{
			Loc:    syntax.Range{Start: cv.pos(clause.StartPoint()), End: end},
			Test:   cv.expr(clause.ChildByFieldName("condition")),
			Body:   cv.stmts(clause.ChildByFieldName("consequence")),
			Orelse: orelse,
			Elif:   true,
		}}
	}

	return &syntax.If{
		Loc:    cv.span(n),
		Test:   cv.expr(n.ChildByFieldName("condition")),
		Body:   cv.stmts(n.ChildByFieldName("consequence")),
		Orelse: orelse,
	}
}

func (cv *converter) exprStmt(n *sitter.Node) syntax.Stmt {
	cv.markLogicalLine(n)
	if n.NamedChildCount() == 0 {
		return &syntax.OpaqueStmt{Loc: cv.span(n)}
	}
	inner := n.NamedChild(0)
	switch inner.Type() {
	case "assignment":
		return cv.assignment(n, inner)
	case "augmented_assignment":
		return &syntax.OpaqueStmt{Loc: cv.span(n)}
	}
	return &syntax.ExprStmt{Loc: cv.span(n), Value: cv.expr(inner)}
}

// assignment flattens `a = b = value` chains into one Assign with
// multiple targets, and maps `target: ann = value` to AnnAssign.
func (cv *converter) assignment(stmt, n *sitter.Node) syntax.Stmt {
	if ann := n.ChildByFieldName("type"); ann != nil {
		var value syntax.Expr
		if right := n.ChildByFieldName("right"); right != nil {
			value = cv.expr(right)
		}
		return &syntax.AnnAssign{
			Loc:        cv.span(stmt),
			Target:     cv.expr(n.ChildByFieldName("left")),
			Annotation: cv.expr(ann),
			Value:      value,
		}
	}

	var targets []syntax.Expr
	right := n
	for right.Type() == "assignment" && right.ChildByFieldName("type") == nil {
		targets = append(targets, cv.expr(right.ChildByFieldName("left")))
		next := right.ChildByFieldName("right")
		if next == nil {
			return &syntax.OpaqueStmt{Loc: cv.span(stmt)}
		}
		right = next
	}
	return &syntax.Assign{
		Loc:     cv.span(stmt),
		Targets: targets,
		Value:   cv.expr(right),
	}
}

func (cv *converter) importStmt(n *sitter.Node) syntax.Stmt {
	imp := &syntax.Import{Loc: cv.span(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, syntax.Alias{Name: cv.text(child)})
		case "aliased_import":
			imp.Names = append(imp.Names, syntax.Alias{
				Name:   cv.fieldText(child, "name"),
				AsName: cv.fieldText(child, "alias"),
			})
		}
	}
	return imp
}

func (cv *converter) importFromStmt(n *sitter.Node) syntax.Stmt {
	imp := &syntax.ImportFrom{Loc: cv.span(n)}
	module := n.ChildByFieldName("module_name")
	if module != nil {
		imp.Module = cv.text(module)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if module != nil && child.StartByte() == module.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, syntax.Alias{Name: cv.text(child)})
		case "aliased_import":
			imp.Names = append(imp.Names, syntax.Alias{
				Name:   cv.fieldText(child, "name"),
				AsName: cv.fieldText(child, "alias"),
			})
		case "wildcard_import":
			imp.Names = append(imp.Names, syntax.Alias{Name: "*"})
		}
	}
	return imp
}

func (cv *converter) fieldText(n *sitter.Node, field string) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return cv.text(child)
}

// markLogicalLine records the directive row for a simple statement that
// spans multiple physical lines: a noqa comment for any of its rows is
// written after the statement's last line.
func (cv *converter) markLogicalLine(n *sitter.Node) {
	start, end := int(n.StartPoint().Row)+1, int(n.EndPoint().Row)+1
	for row := start; row < end; row++ {
		cv.noqaLineFor[row] = end
	}
}
