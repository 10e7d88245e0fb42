package check

import (
	"strings"

	"github.com/siftlint/sift/internal/syntax"
)

type bindingKind int

const (
	// bindModule: `import a.b` binds "a" to module "a".
	bindModule bindingKind = iota
	// bindAlias: `import a.b as c` binds "c" to module "a.b".
	bindAlias
	// bindMember: `from a.b import c [as d]` binds to member "a.b.c".
	bindMember
	// bindShadow: the name was assigned or redefined locally; resolution
	// through it is no longer provable.
	bindShadow
)

type binding struct {
	kind bindingKind
	path string
}

// bindImport records the bindings introduced by an `import` statement.
func (c *Checker) bindImport(stmt *syntax.Import) {
	for _, alias := range stmt.Names {
		if alias.AsName != "" {
			c.bindings[alias.AsName] = binding{kind: bindAlias, path: alias.Name}
			continue
		}
		// `import a.b` binds only the root name.
		root, _, _ := strings.Cut(alias.Name, ".")
		c.bindings[root] = binding{kind: bindModule, path: root}
	}
}

// bindImportFrom records the bindings introduced by a `from` import.
func (c *Checker) bindImportFrom(stmt *syntax.ImportFrom) {
	for _, alias := range stmt.Names {
		if alias.Name == "*" {
			continue
		}
		name := alias.AsName
		if name == "" {
			name = alias.Name
		}
		path := alias.Name
		if stmt.Module != "" {
			path = stmt.Module + "." + alias.Name
		}
		c.bindings[name] = binding{kind: bindMember, path: path}
	}
}

// shadow marks every plain-name target of an assignment as rebound.
func (c *Checker) shadow(targets ...syntax.Expr) {
	for _, t := range targets {
		if name, ok := t.(*syntax.Name); ok {
			c.bindings[name.ID] = binding{kind: bindShadow}
		}
	}
}

// ResolveCallPath resolves a dotted reference back to the fully-qualified
// path in its defining module, looking through import aliasing. It
// returns nil ("cannot prove") when the expression is not a plain
// dotted reference, the root name was never imported, or the name has
// been reassigned. Rules must treat nil as "no match", never as evidence
// of safety.
func (c *Checker) ResolveCallPath(e syntax.Expr) []string {
	segments := syntax.CollectCallPath(e)
	if len(segments) == 0 {
		return nil
	}
	b, ok := c.bindings[segments[0]]
	if !ok || b.kind == bindShadow {
		return nil
	}
	path := strings.Split(b.path, ".")
	return append(path, segments[1:]...)
}

// MatchCallPath reports whether the expression provably resolves to the
// given fully-qualified path.
func (c *Checker) MatchCallPath(e syntax.Expr, want ...string) bool {
	got := c.ResolveCallPath(e)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// ContainsCallPath reports whether any dotted reference inside the
// expression resolves to a path starting with the given prefix. Used for
// exclusions like "don't rewrite sys.version_info checks".
func (c *Checker) ContainsCallPath(e syntax.Expr, prefix ...string) bool {
	if matchPrefix(c.ResolveCallPath(e), prefix) {
		return true
	}
	switch x := e.(type) {
	case *syntax.Attribute:
		return c.ContainsCallPath(x.Value, prefix...)
	case *syntax.Call:
		if c.ContainsCallPath(x.Func, prefix...) {
			return true
		}
		for _, arg := range x.Args {
			if c.ContainsCallPath(arg, prefix...) {
				return true
			}
		}
		for _, kw := range x.Keywords {
			if c.ContainsCallPath(kw.Value, prefix...) {
				return true
			}
		}
	case *syntax.Compare:
		if c.ContainsCallPath(x.Left, prefix...) {
			return true
		}
		for _, cmp := range x.Comparators {
			if c.ContainsCallPath(cmp, prefix...) {
				return true
			}
		}
	case *syntax.BoolOp:
		return c.ContainsCallPath(x.Left, prefix...) || c.ContainsCallPath(x.Right, prefix...)
	case *syntax.BinOp:
		return c.ContainsCallPath(x.Left, prefix...) || c.ContainsCallPath(x.Right, prefix...)
	case *syntax.UnaryOp:
		return c.ContainsCallPath(x.Operand, prefix...)
	case *syntax.Subscript:
		return c.ContainsCallPath(x.Value, prefix...) || c.ContainsCallPath(x.Slice, prefix...)
	case *syntax.Tuple:
		for _, elt := range x.Elts {
			if c.ContainsCallPath(elt, prefix...) {
				return true
			}
		}
	}
	return false
}

func matchPrefix(path, prefix []string) bool {
	if len(path) < len(prefix) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}
