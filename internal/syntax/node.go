package syntax

// Kind identifies the shape of a node. The checker's dispatch registry is
// keyed by Kind, keeping the rule set statically enumerable without
// reflection or virtual dispatch.
type Kind int

const (
	KindModule Kind = iota

	// Statements.
	KindIf
	KindAssign
	KindAnnAssign
	KindReturn
	KindImport
	KindImportFrom
	KindExprStmt
	KindFunctionDef
	KindClassDef
	KindPass
	KindOpaqueStmt

	// Expressions.
	KindName
	KindAttribute
	KindCall
	KindConstant
	KindCompare
	KindSubscript
	KindBinOp
	KindBoolOp
	KindUnaryOp
	KindIfExp
	KindTuple
	KindOpaqueExpr
)

var kindNames = map[Kind]string{
	KindModule:      "module",
	KindIf:          "if",
	KindAssign:      "assign",
	KindAnnAssign:   "ann-assign",
	KindReturn:      "return",
	KindImport:      "import",
	KindImportFrom:  "import-from",
	KindExprStmt:    "expr-stmt",
	KindFunctionDef: "function-def",
	KindClassDef:    "class-def",
	KindPass:        "pass",
	KindOpaqueStmt:  "opaque-stmt",
	KindName:        "name",
	KindAttribute:   "attribute",
	KindCall:        "call",
	KindConstant:    "constant",
	KindCompare:     "compare",
	KindSubscript:   "subscript",
	KindBinOp:       "binop",
	KindBoolOp:      "boolop",
	KindUnaryOp:     "unaryop",
	KindIfExp:       "if-exp",
	KindTuple:       "tuple",
	KindOpaqueExpr:  "opaque-expr",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	Span() Range
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}
