package syntax

// Name is an identifier.
type Name struct {
	Loc Range
	ID  string
}

func (e *Name) Kind() Kind  { return KindName }
func (e *Name) Span() Range { return e.Loc }

// Attribute is `value.attr`.
type Attribute struct {
	Loc   Range
	Value Expr
	Attr  string
}

func (e *Attribute) Kind() Kind  { return KindAttribute }
func (e *Attribute) Span() Range { return e.Loc }

// Keyword is one `name=value` argument of a call.
type Keyword struct {
	Loc   Range
	Arg   string // empty for **kwargs
	Value Expr
}

// Call is `func(args..., keywords...)`.
type Call struct {
	Loc      Range
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (e *Call) Kind() Kind  { return KindCall }
func (e *Call) Span() Range { return e.Loc }

// ConstKind classifies literal constants.
type ConstKind int

const (
	ConstStr ConstKind = iota
	ConstInt
	ConstFloat
	ConstBool
	ConstNone
	ConstEllipsis
)

// Constant is a literal. For strings Value holds the unquoted content;
// for everything else it holds the literal text as written.
type Constant struct {
	Loc       Range
	ConstKind ConstKind
	Value     string
}

func (e *Constant) Kind() Kind  { return KindConstant }
func (e *Constant) Span() Range { return e.Loc }

// IsStr reports whether the constant is a string literal.
func (e *Constant) IsStr() bool { return e.ConstKind == ConstStr }

// Compare is a chained comparison, `left op0 comparators[0] op1 ...`.
// Operators are stored as their surface text ("==", "in", "not in", ...).
type Compare struct {
	Loc         Range
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (e *Compare) Kind() Kind  { return KindCompare }
func (e *Compare) Span() Range { return e.Loc }

// Subscript is `value[slice]`. A multi-element subscript like `d[a, b]`
// carries a Tuple in Slice.
type Subscript struct {
	Loc   Range
	Value Expr
	Slice Expr
}

func (e *Subscript) Kind() Kind  { return KindSubscript }
func (e *Subscript) Span() Range { return e.Loc }

// BinOp is a binary arithmetic/bitwise operation with its surface operator.
type BinOp struct {
	Loc   Range
	Left  Expr
	Op    string
	Right Expr
}

func (e *BinOp) Kind() Kind  { return KindBinOp }
func (e *BinOp) Span() Range { return e.Loc }

// BoolOp is `and`/`or` with exactly two operands; longer chains nest to
// the left, matching how the parser folds them.
type BoolOp struct {
	Loc   Range
	Left  Expr
	Op    string // "and" or "or"
	Right Expr
}

func (e *BoolOp) Kind() Kind  { return KindBoolOp }
func (e *BoolOp) Span() Range { return e.Loc }

// UnaryOp is `not x`, `-x`, `+x`, `~x`.
type UnaryOp struct {
	Loc     Range
	Op      string
	Operand Expr
}

func (e *UnaryOp) Kind() Kind  { return KindUnaryOp }
func (e *UnaryOp) Span() Range { return e.Loc }

// IfExp is the ternary `body if test else orelse`.
type IfExp struct {
	Loc    Range
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (e *IfExp) Kind() Kind  { return KindIfExp }
func (e *IfExp) Span() Range { return e.Loc }

// Tuple is `(a, b, ...)` or a bare expression list.
type Tuple struct {
	Loc  Range
	Elts []Expr
}

func (e *Tuple) Kind() Kind  { return KindTuple }
func (e *Tuple) Span() Range { return e.Loc }

// OpaqueExpr stands in for expression shapes the engine does not model
// (lambdas, comprehensions, f-strings, ...). It keeps its source span so
// fixes can still splice the original text around it; rules treat it as
// "cannot prove a match".
type OpaqueExpr struct {
	Loc Range
}

func (e *OpaqueExpr) Kind() Kind  { return KindOpaqueExpr }
func (e *OpaqueExpr) Span() Range { return e.Loc }

func (*Name) exprNode()       {}
func (*Attribute) exprNode()  {}
func (*Call) exprNode()       {}
func (*Constant) exprNode()   {}
func (*Compare) exprNode()    {}
func (*Subscript) exprNode()  {}
func (*BinOp) exprNode()      {}
func (*BoolOp) exprNode()     {}
func (*UnaryOp) exprNode()    {}
func (*IfExp) exprNode()      {}
func (*Tuple) exprNode()      {}
func (*OpaqueExpr) exprNode() {}
