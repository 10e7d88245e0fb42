package syntax

// Equal reports structural equality of two expressions, ignoring source
// spans. Opaque expressions never compare equal: the engine cannot prove
// two shapes it does not model are the same, and rules that rely on
// equality must decline rather than guess.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Name:
		return x.ID == b.(*Name).ID
	case *Attribute:
		y := b.(*Attribute)
		return x.Attr == y.Attr && Equal(x.Value, y.Value)
	case *Constant:
		y := b.(*Constant)
		return x.ConstKind == y.ConstKind && x.Value == y.Value
	case *Call:
		y := b.(*Call)
		if !Equal(x.Func, y.Func) || !equalSlices(x.Args, y.Args) {
			return false
		}
		if len(x.Keywords) != len(y.Keywords) {
			return false
		}
		for i := range x.Keywords {
			if x.Keywords[i].Arg != y.Keywords[i].Arg ||
				!Equal(x.Keywords[i].Value, y.Keywords[i].Value) {
				return false
			}
		}
		return true
	case *Compare:
		y := b.(*Compare)
		if len(x.Ops) != len(y.Ops) {
			return false
		}
		for i := range x.Ops {
			if x.Ops[i] != y.Ops[i] {
				return false
			}
		}
		return Equal(x.Left, y.Left) && equalSlices(x.Comparators, y.Comparators)
	case *Subscript:
		y := b.(*Subscript)
		return Equal(x.Value, y.Value) && Equal(x.Slice, y.Slice)
	case *BinOp:
		y := b.(*BinOp)
		return x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *BoolOp:
		y := b.(*BoolOp)
		return x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *UnaryOp:
		y := b.(*UnaryOp)
		return x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *IfExp:
		y := b.(*IfExp)
		return Equal(x.Test, y.Test) && Equal(x.Body, y.Body) && Equal(x.Orelse, y.Orelse)
	case *Tuple:
		return equalSlices(x.Elts, b.(*Tuple).Elts)
	default:
		// OpaqueExpr and anything unmodelled.
		return false
	}
}

func equalSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
