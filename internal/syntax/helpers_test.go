package syntax

import (
	"reflect"
	"testing"
)

func name(id string) *Name { return &Name{ID: id} }

func attr(value Expr, parts ...string) Expr {
	out := value
	for _, p := range parts {
		out = &Attribute{Value: out, Attr: p}
	}
	return out
}

func TestCollectCallPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		expr Expr
		want []string
	}{
		{"plain name", name("os"), []string{"os"}},
		{"dotted", attr(name("a"), "b", "c"), []string{"a", "b", "c"}},
		{"call looked through", &Call{Func: attr(name("subprocess"), "run")}, []string{"subprocess", "run"}},
		{"subscript root", &Attribute{Value: &Subscript{Value: name("d"), Slice: name("k")}, Attr: "x"}, nil},
		{"opaque", &OpaqueExpr{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := CollectCallPath(tt.expr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CollectCallPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		a, b Expr
		want bool
	}{
		{"same name", name("x"), name("x"), true},
		{"different name", name("x"), name("y"), false},
		{"spans ignored", &Name{Loc: NewRange(1, 0, 1, 1), ID: "x"}, &Name{Loc: NewRange(9, 3, 9, 4), ID: "x"}, true},
		{"dotted match", attr(name("a"), "b"), attr(name("a"), "b"), true},
		{"dotted mismatch", attr(name("a"), "b"), attr(name("a"), "c"), false},
		{
			"string constants",
			&Constant{ConstKind: ConstStr, Value: "key"},
			&Constant{ConstKind: ConstStr, Value: "key"},
			true,
		},
		{
			"kind mismatch",
			&Constant{ConstKind: ConstStr, Value: "1"},
			&Constant{ConstKind: ConstInt, Value: "1"},
			false,
		},
		{
			"subscript",
			&Subscript{Value: name("d"), Slice: name("k")},
			&Subscript{Value: name("d"), Slice: name("k")},
			true,
		},
		{"opaque never equal", &OpaqueExpr{}, &OpaqueExpr{}, false},
		{"nil and non-nil", nil, name("x"), false},
		{"both nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasSideEffects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		expr Expr
		want bool
	}{
		{"name", name("x"), false},
		{"constant", &Constant{ConstKind: ConstNone, Value: "None"}, false},
		{"attribute of name", attr(name("a"), "b"), false},
		{"call", &Call{Func: name("f")}, true},
		{"subscript may invoke getitem", &Subscript{Value: name("d"), Slice: name("k")}, true},
		{"binop of pure operands", &BinOp{Left: name("a"), Op: "+", Right: name("b")}, false},
		{"binop with call", &BinOp{Left: name("a"), Op: "+", Right: &Call{Func: name("f")}}, true},
		{"opaque assumed effectful", &OpaqueExpr{}, true},
		{
			"tuple with call",
			&Tuple{Elts: []Expr{name("a"), &Call{Func: name("f")}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := HasSideEffects(tt.expr); got != tt.want {
				t.Errorf("HasSideEffects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsMainGuard(t *testing.T) {
	t.Parallel()

	guard := &Compare{
		Left:        name("__name__"),
		Ops:         []string{"=="},
		Comparators: []Expr{&Constant{ConstKind: ConstStr, Value: "__main__"}},
	}
	if !IsMainGuard(guard) {
		t.Error("__name__ == \"__main__\" should be recognized")
	}

	notEq := &Compare{
		Left:        name("__name__"),
		Ops:         []string{"!="},
		Comparators: []Expr{&Constant{ConstKind: ConstStr, Value: "__main__"}},
	}
	if IsMainGuard(notEq) {
		t.Error("!= comparison is not a main guard")
	}

	otherName := &Compare{
		Left:        name("mode"),
		Ops:         []string{"=="},
		Comparators: []Expr{&Constant{ConstKind: ConstStr, Value: "__main__"}},
	}
	if IsMainGuard(otherName) {
		t.Error("comparison of another name is not a main guard")
	}

	if IsMainGuard(name("__name__")) {
		t.Error("a bare name is not a main guard")
	}
}

func TestIsForwardReference(t *testing.T) {
	t.Parallel()

	if !IsForwardReference(&Constant{ConstKind: ConstStr, Value: "Node"}) {
		t.Error("string literal is a forward reference")
	}
	if IsForwardReference(name("Node")) {
		t.Error("plain name is not a forward reference")
	}
	mixed := &Tuple{Elts: []Expr{name("int"), &Constant{ConstKind: ConstStr, Value: "Node"}}}
	if !IsForwardReference(mixed) {
		t.Error("tuple containing a string literal is a forward reference")
	}
	clean := &Tuple{Elts: []Expr{name("int"), name("str")}}
	if IsForwardReference(clean) {
		t.Error("tuple of names is not a forward reference")
	}
}
