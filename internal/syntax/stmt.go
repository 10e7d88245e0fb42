package syntax

// Module is the root of a parsed file.
type Module struct {
	Body []Stmt
}

func (*Module) Kind() Kind { return KindModule }

// Span covers the whole body; an empty module has a zero span.
func (m *Module) Span() Range {
	if len(m.Body) == 0 {
		return Range{}
	}
	return Range{
		Start: m.Body[0].Span().Start,
		End:   m.Body[len(m.Body)-1].Span().End,
	}
}

// If is an `if`/`elif`/`else` statement. An `elif` chain is represented the
// way CPython's ast does it: Orelse holding a single nested If whose span
// starts at the `elif` keyword.
type If struct {
	Loc    Range
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
	// Elif is true when this node was written with the `elif` keyword
	// rather than an indented `if` inside an `else` block. The two share
	// tree shape; rules that must distinguish them consult the parent.
	Elif bool
}

func (s *If) Kind() Kind  { return KindIf }
func (s *If) Span() Range { return s.Loc }

// Assign is `targets = value`.
type Assign struct {
	Loc     Range
	Targets []Expr
	Value   Expr
}

func (s *Assign) Kind() Kind  { return KindAssign }
func (s *Assign) Span() Range { return s.Loc }

// AnnAssign is an annotated assignment, `target: annotation = value`.
// Value may be nil for a bare annotation.
type AnnAssign struct {
	Loc        Range
	Target     Expr
	Annotation Expr
	Value      Expr
}

func (s *AnnAssign) Kind() Kind  { return KindAnnAssign }
func (s *AnnAssign) Span() Range { return s.Loc }

// Return is a `return` statement; Value may be nil.
type Return struct {
	Loc   Range
	Value Expr
}

func (s *Return) Kind() Kind  { return KindReturn }
func (s *Return) Span() Range { return s.Loc }

// Alias is one `name [as asname]` clause of an import.
type Alias struct {
	Name   string
	AsName string
}

// Import is `import a.b [as c], ...`.
type Import struct {
	Loc   Range
	Names []Alias
}

func (s *Import) Kind() Kind  { return KindImport }
func (s *Import) Span() Range { return s.Loc }

// ImportFrom is `from module import name [as asname], ...`.
// A wildcard import is represented by a single Alias{Name: "*"}.
type ImportFrom struct {
	Loc    Range
	Module string
	Names  []Alias
}

func (s *ImportFrom) Kind() Kind  { return KindImportFrom }
func (s *ImportFrom) Span() Range { return s.Loc }

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	Loc   Range
	Value Expr
}

func (s *ExprStmt) Kind() Kind  { return KindExprStmt }
func (s *ExprStmt) Span() Range { return s.Loc }

// FunctionDef carries only what traversal needs: the name and the body.
type FunctionDef struct {
	Loc  Range
	Name string
	Body []Stmt
}

func (s *FunctionDef) Kind() Kind  { return KindFunctionDef }
func (s *FunctionDef) Span() Range { return s.Loc }

// ClassDef carries only what traversal needs: the name and the body.
type ClassDef struct {
	Loc  Range
	Name string
	Body []Stmt
}

func (s *ClassDef) Kind() Kind  { return KindClassDef }
func (s *ClassDef) Span() Range { return s.Loc }

// Pass is a `pass` statement.
type Pass struct {
	Loc Range
}

func (s *Pass) Kind() Kind  { return KindPass }
func (s *Pass) Span() Range { return s.Loc }

// OpaqueStmt stands in for statement shapes the engine does not model
// (while, try, with, ...). Rules never match it; nested blocks are still
// traversed through Body so rules fire inside loops and try blocks.
type OpaqueStmt struct {
	Loc  Range
	Body []Stmt
}

func (s *OpaqueStmt) Kind() Kind  { return KindOpaqueStmt }
func (s *OpaqueStmt) Span() Range { return s.Loc }

func (*If) stmtNode()          {}
func (*Assign) stmtNode()      {}
func (*AnnAssign) stmtNode()   {}
func (*Return) stmtNode()      {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*ExprStmt) stmtNode()    {}
func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*OpaqueStmt) stmtNode()  {}
