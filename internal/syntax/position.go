// Package syntax defines the Python syntax tree consumed by the checker,
// along with the Position/Range model shared by diagnostics and fixes.
//
// The tree is produced by an external parser (see internal/python); this
// package only defines the node types, source positions, and the structural
// helpers rules need (equality, call-path collection, effect analysis).
package syntax

// Position is a single point in a source file.
//
// Rows are 1-based (the first line is 1), columns are 0-based character
// offsets within the line. This matches the convention used by the parser
// and by `# noqa` column spans.
type Position struct {
	// Row is the 1-based line number.
	Row int `json:"row"`
	// Col is the 0-based character offset within the line.
	Col int `json:"column"`
}

// Before reports whether p sorts strictly before other in (row, col) order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// After reports whether p sorts strictly after other.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// IsZero reports whether p is the zero position used for synthetic nodes.
// Fixes must never be anchored at a zero position.
func (p Position) IsZero() bool {
	return p.Row == 0 && p.Col == 0
}

// Range is a half-open span of source text: Start is inclusive, End is
// exclusive, in (row, col) order.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange constructs a Range from raw coordinates.
func NewRange(startRow, startCol, endRow, endCol int) Range {
	return Range{
		Start: Position{Row: startRow, Col: startCol},
		End:   Position{Row: endRow, Col: endCol},
	}
}

// Contains reports whether the position lies inside the range.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// ContainsRange reports whether other lies fully inside r.
func (r Range) ContainsRange(other Range) bool {
	return !other.Start.Before(r.Start) && !r.End.Before(other.End)
}

// Overlaps reports whether the two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Compare orders ranges by start position, then by end position.
// Returns -1, 0, or 1, suitable for sort stability.
func (r Range) Compare(other Range) int {
	if r.Start.Before(other.Start) {
		return -1
	}
	if other.Start.Before(r.Start) {
		return 1
	}
	if r.End.Before(other.End) {
		return -1
	}
	if other.End.Before(r.End) {
		return 1
	}
	return 0
}

// IsZero reports whether the range is entirely synthetic.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
