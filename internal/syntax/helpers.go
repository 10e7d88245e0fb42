package syntax

// CollectCallPath flattens a dotted reference into its segments, e.g.
// `a.b.c` -> ["a", "b", "c"]. A call at the end of the chain is looked
// through (`a.b.c()` also yields ["a", "b", "c"]). Returns nil when the
// expression is not a plain dotted reference.
func CollectCallPath(e Expr) []string {
	switch x := e.(type) {
	case *Name:
		return []string{x.ID}
	case *Attribute:
		head := CollectCallPath(x.Value)
		if head == nil {
			return nil
		}
		return append(head, x.Attr)
	case *Call:
		return CollectCallPath(x.Func)
	default:
		return nil
	}
}

// HasSideEffects reports whether evaluating the expression could have an
// observable effect. Anything the engine cannot model counts as effectful,
// so fix-synthesis guards err toward declining.
func HasSideEffects(e Expr) bool {
	switch x := e.(type) {
	case *Name, *Constant:
		return false
	case *Attribute:
		return HasSideEffects(x.Value)
	case *Tuple:
		for _, elt := range x.Elts {
			if HasSideEffects(elt) {
				return true
			}
		}
		return false
	case *UnaryOp:
		return HasSideEffects(x.Operand)
	case *BinOp:
		return HasSideEffects(x.Left) || HasSideEffects(x.Right)
	case *BoolOp:
		return HasSideEffects(x.Left) || HasSideEffects(x.Right)
	case *Compare:
		if HasSideEffects(x.Left) {
			return true
		}
		for _, c := range x.Comparators {
			if HasSideEffects(c) {
				return true
			}
		}
		return false
	default:
		// Calls, subscripts (may invoke __getitem__), and opaque shapes.
		return true
	}
}

// IsMainGuard reports whether the expression is the module entry check
// `__name__ == "__main__"`. Rules that rewrite conditionals exempt it.
func IsMainGuard(test Expr) bool {
	cmp, ok := test.(*Compare)
	if !ok {
		return false
	}
	name, ok := cmp.Left.(*Name)
	if !ok || name.ID != "__name__" {
		return false
	}
	if len(cmp.Ops) != 1 || cmp.Ops[0] != "==" || len(cmp.Comparators) != 1 {
		return false
	}
	c, ok := cmp.Comparators[0].(*Constant)
	return ok && c.ConstKind == ConstStr && c.Value == "__main__"
}

// IsForwardReference reports whether any part of a type expression is a
// string literal (a deferred annotation). Union rewriting must skip these:
// `Optional["Node"]` and `"Node" | None` evaluate differently.
func IsForwardReference(e Expr) bool {
	switch x := e.(type) {
	case *Constant:
		return x.ConstKind == ConstStr
	case *Tuple:
		for _, elt := range x.Elts {
			if IsForwardReference(elt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
