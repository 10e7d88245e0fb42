// Package render builds replacement text for auto-fixes.
//
// Fragments form a small expression language separate from the parsed
// syntax tree: rules compose them from slices of the original source
// (Raw) plus the synthetic structure the rewrite introduces, then render
// the result to text. Keeping this type apart from internal/syntax means
// fix synthesis never entangles the parser's node types.
package render

import "strings"

// Fragment is one piece of a replacement expression.
type Fragment interface {
	render(b *strings.Builder)
}

// Raw is literal text, usually sliced verbatim from the original source.
type Raw string

func (r Raw) render(b *strings.Builder) { b.WriteString(string(r)) }

// Attr renders `value.name`.
type Attr struct {
	Value Fragment
	Name  string
}

func (a Attr) render(b *strings.Builder) {
	a.Value.render(b)
	b.WriteByte('.')
	b.WriteString(a.Name)
}

// Call renders `fn(args, ...)`.
type Call struct {
	Func Fragment
	Args []Fragment
}

func (c Call) render(b *strings.Builder) {
	c.Func.render(b)
	b.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.render(b)
	}
	b.WriteByte(')')
}

// Binary renders `left op right` with single spaces around the operator.
type Binary struct {
	Left  Fragment
	Op    string
	Right Fragment
}

func (o Binary) render(b *strings.Builder) {
	o.Left.render(b)
	b.WriteByte(' ')
	b.WriteString(o.Op)
	b.WriteByte(' ')
	o.Right.render(b)
}

// Ternary renders `body if test else orelse`.
type Ternary struct {
	Body   Fragment
	Test   Fragment
	Orelse Fragment
}

func (t Ternary) render(b *strings.Builder) {
	t.Body.render(b)
	b.WriteString(" if ")
	t.Test.render(b)
	b.WriteString(" else ")
	t.Orelse.render(b)
}

// Assign renders `target = value`.
type Assign struct {
	Target Fragment
	Value  Fragment
}

func (a Assign) render(b *strings.Builder) {
	a.Target.render(b)
	b.WriteString(" = ")
	a.Value.render(b)
}

// Union folds two or more type arguments into a left-associative chain of
// `|` operators: Union(a, b, c) renders `a | b | c`.
func Union(args []Fragment) Fragment {
	if len(args) == 1 {
		return args[0]
	}
	return Binary{Left: Union(args[:len(args)-1]), Op: "|", Right: args[len(args)-1]}
}

// Text renders a fragment tree to its final string form.
func Text(f Fragment) string {
	var b strings.Builder
	f.render(&b)
	return b.String()
}

// FitsWithin reports whether, rendered at the given start column, every
// resulting line stays within the limit. Multi-line replacements check
// each line; only the first line is offset by the start column.
func FitsWithin(content string, startCol, limit int) bool {
	if limit <= 0 {
		return true
	}
	for i, line := range strings.Split(content, "\n") {
		width := len([]rune(line))
		if i == 0 {
			width += startCol
		}
		if width > limit {
			return false
		}
	}
	return true
}
